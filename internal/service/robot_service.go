package service

import (
	"strings"
	"time"
)

// RobotService detects automated submissions with two independent
// heuristics: a honeypot field and submission timing. It runs
// regardless of CAPTCHA outcome, as a fallback for deployments without
// Turnstile and an extra filter when Turnstile is present.
type RobotService struct {
	minSubmissionTime time.Duration
}

// NewRobotService creates a robot detector. minSubmissionTime is the
// shortest plausible human form-fill duration.
func NewRobotService(minSubmissionTime time.Duration) *RobotService {
	return &RobotService{minSubmissionTime: minSubmissionTime}
}

// RobotCheckResult is the detection verdict.
type RobotCheckResult struct {
	IsRobot bool
	Reason  string
}

// RobotCheckInput carries the anti-bot fields of a submission.
type RobotCheckInput struct {
	Honeypot string
	// SubmissionTime is milliseconds from form render to submit;
	// nil when the client did not report it.
	SubmissionTime *int64
}

// Validate applies the heuristics, first match wins. A submission time
// exactly at the minimum passes.
func (s *RobotService) Validate(in RobotCheckInput) RobotCheckResult {
	if strings.TrimSpace(in.Honeypot) != "" {
		return RobotCheckResult{
			IsRobot: true,
			Reason:  "Honeypot field filled",
		}
	}

	if in.SubmissionTime != nil {
		elapsed := time.Duration(*in.SubmissionTime) * time.Millisecond
		if elapsed < s.minSubmissionTime {
			return RobotCheckResult{
				IsRobot: true,
				Reason:  "Submission too fast (likely automated)",
			}
		}
	}

	return RobotCheckResult{}
}
