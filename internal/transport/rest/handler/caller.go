package handler

import (
	"net/http"
	"strconv"

	"mindbridge/internal/model"
	"mindbridge/internal/service"
	"mindbridge/internal/transport/rest/middleware"
)

// ownerOf resolves who a request acts for. A logged-in user wins over an
// anonymous session sent alongside.
func ownerOf(r *http.Request) (model.Owner, *model.AnonymousSession, bool) {
	if id := middleware.GetUserID(r.Context()); id != "" {
		return model.Owner{Kind: model.OwnerUser, ID: id}, nil, true
	}
	if s := middleware.GetSession(r.Context()); s != nil {
		return model.Owner{Kind: model.OwnerAnonymous, ID: s.ID}, s, true
	}
	return model.Owner{}, nil, false
}

func callerOf(r *http.Request) service.Caller {
	c := service.Caller{UserID: middleware.GetUserID(r.Context())}
	if s := middleware.GetSession(r.Context()); s != nil {
		c.SessionID = s.ID
	}
	return c
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
