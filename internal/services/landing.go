package services

import "github.com/mockinsight/interview-service/internal/models"

var landingContent = models.LandingContent{
	Headline:   "Your Personal",
	Highlight:  "AI Interview Coach",
	Tagline:    "Double your chances of landing that job offer with our AI-powered interview prep",
	StepsTitle: "How it Works?",
	StepsIntro: "Give mock interviews in just 3 simple steps",
	Steps: []models.LandingStep{
		{
			Step:        "01",
			Title:       "Sign In and Go to Dashboard",
			Description: "Access your dashboard by signing in to view and manage your interviews, track progress, and more.",
		},
		{
			Step:        "02",
			Title:       "Add New Interview",
			Description: "Enter the details of the job position, description, and experience required to generate customized interview questions.",
		},
		{
			Step:        "03",
			Title:       "Check Your Responses",
			Description: "Submit the interview and review the AI-generated feedback. You can also see the rating given, view the correct answers, and identify areas for improvement.",
		},
	},
	CallToTitle: "Ready to Ace Your Next Interview?",
	CallToText:  "Join thousands of professionals who have improved their interview skills with MockInsight",
	CallToLabel: "Start Your Free Mock Interview",
}

// LandingContent returns a copy of the static landing page copy.
func LandingContent() models.LandingContent {
	content := landingContent
	content.Steps = append([]models.LandingStep(nil), landingContent.Steps...)
	return content
}
