package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindbridge/internal/app"
	"mindbridge/internal/assessment"
	"mindbridge/internal/config"
	"mindbridge/internal/logging"
	"mindbridge/internal/model"
	"mindbridge/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mindctl",
		Short:         "MindBridge operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedCmd(), newScoreCmd(assessment.DefaultEngine()))
	return root
}

func newSeedCmd() *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database",
	}
	seed.AddCommand(
		&cobra.Command{
			Use:   "admin",
			Short: "Create the admin account from ADMIN_EMAIL and ADMIN_PASSWORD",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), func(cfg *config.Config, a *app.App) error {
					admin, created, err := a.Auth.EnsureAdmin(cmd.Context(), cfg.AdminEmail, cfg.AdminPassword)
					if err != nil {
						return err
					}
					if created {
						fmt.Fprintf(cmd.OutOrStdout(), "created admin %s\n", admin.Email)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", admin.Email)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "therapists",
			Short: "Insert the sample counselor directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), func(_ *config.Config, a *app.App) error {
					return seedTherapists(cmd.Context(), cmd.OutOrStdout(), a.Admin)
				})
			},
		},
	)
	return seed
}

func withApp(ctx context.Context, fn func(*config.Config, *app.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("close", zap.Error(err))
		}
	}()
	return fn(cfg, a)
}

var sampleTherapists = []model.Therapist{
	{
		Name:           "Dr. Priya Raman",
		Email:          "priya.raman@college.edu",
		Specialization: "Anxiety and exam stress",
		Experience:     "9 years",
		Availability:   "Mon-Thu, 10:00-16:00",
	},
	{
		Name:           "Arjun Mehta",
		Email:          "arjun.mehta@college.edu",
		Specialization: "Depression and mood disorders",
		Experience:     "6 years",
		Availability:   "Tue-Fri, 12:00-18:00",
	},
	{
		Name:           "Dr. Sarah Okafor",
		Email:          "sarah.okafor@college.edu",
		Specialization: "Relationships and family counseling",
		Experience:     "12 years",
		Availability:   "Mon, Wed, Fri, 09:00-15:00",
	},
}

type therapistCreator interface {
	CreateTherapist(ctx context.Context, t model.Therapist) (*model.Therapist, error)
}

func seedTherapists(ctx context.Context, out io.Writer, admin therapistCreator) error {
	for _, t := range sampleTherapists {
		created, err := admin.CreateTherapist(ctx, t)
		switch {
		case err == nil:
			fmt.Fprintf(out, "added %s (%s)\n", created.Name, created.ID)
		case errors.Is(err, service.ErrTherapistExists):
			fmt.Fprintf(out, "skipped %s: already listed\n", t.Email)
		default:
			return fmt.Errorf("seed %s: %w", t.Email, err)
		}
	}
	return nil
}

func newScoreCmd(engine *assessment.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "score <instrument> <answer>...",
		Short: "Score a set of answers, e.g. mindctl score phq9 1 2 0 3 1 0 2 1 0",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToLower(args[0])
			answers := make([]int, 0, len(args)-1)
			for _, a := range args[1:] {
				v, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("answer %q is not a number", a)
				}
				answers = append(answers, v)
			}
			res, err := engine.Compute(code, answers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d/%d %s: %s\n",
				res.InstrumentCode, res.TotalScore, res.MaxScore, res.Severity.Level, res.Severity.Description)
			return nil
		},
	}
}
