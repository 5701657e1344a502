package assessment

// Instrument codes
const (
	CodePHQ9  = "phq9"
	CodeGAD7  = "gad7"
	CodeGHQ12 = "ghq12"
)

var frequencyOptions = []Option{
	{Value: 0, Label: "Not at all"},
	{Value: 1, Label: "Several days"},
	{Value: 2, Label: "More than half the days"},
	{Value: 3, Label: "Nearly every day"},
}

// PHQ9 returns the Patient Health Questionnaire depression screen.
func PHQ9() *Instrument {
	return &Instrument{
		Code:        CodePHQ9,
		Name:        "PHQ-9",
		Title:       "Depression Screening",
		Description: "Patient Health Questionnaire-9 for depression screening",
		Timeframe:   "Over the last 2 weeks, how often have you been bothered by:",
		Questions: []string{
			"Little interest or pleasure in doing things",
			"Feeling down, depressed, or hopeless",
			"Trouble falling or staying asleep, or sleeping too much",
			"Feeling tired or having little energy",
			"Poor appetite or overeating",
			"Feeling bad about yourself or that you are a failure or have let yourself or your family down",
			"Trouble concentrating on things, such as reading the newspaper or watching television",
			"Moving or speaking so slowly that other people could have noticed. Or the opposite being so fidgety or restless that you have been moving around a lot more than usual",
			"Thoughts that you would be better off dead, or of hurting yourself",
		},
		Options: frequencyOptions,
		Bands: []SeverityBand{
			{Min: 0, Max: 4, Level: "Minimal", Category: "green", Description: "Minimal depression symptoms"},
			{Min: 5, Max: 9, Level: "Mild", Category: "yellow", Description: "Mild depression symptoms"},
			{Min: 10, Max: 14, Level: "Moderate", Category: "orange", Description: "Moderate depression symptoms"},
			{Min: 15, Max: 19, Level: "Moderately Severe", Category: "red", Description: "Moderately severe depression symptoms"},
			{Min: 20, Max: 27, Level: "Severe", Category: "darkred", Description: "Severe depression symptoms"},
		},
	}
}

// GAD7 returns the Generalized Anxiety Disorder scale.
func GAD7() *Instrument {
	return &Instrument{
		Code:        CodeGAD7,
		Name:        "GAD-7",
		Title:       "Anxiety Screening",
		Description: "Generalized Anxiety Disorder 7-item scale",
		Timeframe:   "Over the last 2 weeks, how often have you been bothered by:",
		Questions: []string{
			"Feeling nervous, anxious, or on edge",
			"Not being able to stop or control worrying",
			"Worrying too much about different things",
			"Trouble relaxing",
			"Being so restless that it is hard to sit still",
			"Becoming easily annoyed or irritable",
			"Feeling afraid, as if something awful might happen",
		},
		Options: frequencyOptions,
		Bands: []SeverityBand{
			{Min: 0, Max: 4, Level: "Minimal", Category: "green", Description: "Minimal anxiety symptoms"},
			{Min: 5, Max: 9, Level: "Mild", Category: "yellow", Description: "Mild anxiety symptoms"},
			{Min: 10, Max: 14, Level: "Moderate", Category: "orange", Description: "Moderate anxiety symptoms"},
			{Min: 15, Max: 21, Level: "Severe", Category: "red", Description: "Severe anxiety symptoms"},
		},
	}
}

// GHQ12 returns the General Health Questionnaire.
func GHQ12() *Instrument {
	return &Instrument{
		Code:        CodeGHQ12,
		Name:        "GHQ-12",
		Title:       "General Health Screening",
		Description: "General Health Questionnaire for overall psychological wellbeing",
		Timeframe:   "Have you recently:",
		Questions: []string{
			"Been able to concentrate on whatever you're doing",
			"Lost much sleep over worry",
			"Felt that you were playing a useful part in things",
			"Felt capable of making decisions about things",
			"Felt constantly under strain",
			"Felt you couldn't overcome your difficulties",
			"Been able to enjoy your normal day-to-day activities",
			"Been able to face up to problems",
			"Been feeling unhappy or depressed",
			"Been losing confidence in yourself",
			"Been thinking of yourself as a worthless person",
			"Been feeling reasonably happy, all things considered",
		},
		Options: []Option{
			{Value: 0, Label: "Better than usual"},
			{Value: 1, Label: "Same as usual"},
			{Value: 2, Label: "Less than usual"},
			{Value: 3, Label: "Much less than usual"},
		},
		Bands: []SeverityBand{
			{Min: 0, Max: 15, Level: "Good", Category: "green", Description: "Good psychological wellbeing"},
			{Min: 16, Max: 20, Level: "Mild Distress", Category: "yellow", Description: "Mild psychological distress"},
			{Min: 21, Max: 25, Level: "Moderate Distress", Category: "orange", Description: "Moderate psychological distress"},
			{Min: 26, Max: 36, Level: "Severe Distress", Category: "red", Description: "Severe psychological distress"},
		},
	}
}
