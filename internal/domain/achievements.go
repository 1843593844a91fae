package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Achievements
// ============================================================

// AchievementType groups achievements by the feature that unlocks them.
type AchievementType string

const (
	AchievementInvestment AchievementType = "investment"
	AchievementSavings    AchievementType = "savings"
	AchievementQuiz       AchievementType = "quiz"
	AchievementPortfolio  AchievementType = "portfolio"
)

// Achievement is a one-way flag unlocked by account milestones.
type Achievement struct {
	Type         AchievementType `json:"type"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Unlocked     bool            `json:"unlocked"`
	DateUnlocked *time.Time      `json:"date_unlocked,omitempty"`
}

// savingsMasterTarget is the total savings balance that unlocks
// "Savings Master".
var savingsMasterTarget = decimal.NewFromInt(5000)

// StartingAchievements returns the fixed achievement list every fresh
// account begins with, all locked.
func StartingAchievements() []Achievement {
	return []Achievement{
		{
			Type:        AchievementInvestment,
			Title:       "First Investment",
			Description: "Make your first stock purchase",
		},
		{
			Type:        AchievementInvestment,
			Title:       "Dividend Collector",
			Description: "Own shares in all dividend-paying stocks",
		},
		{
			Type:        AchievementSavings,
			Title:       "Savings Master",
			Description: "Accumulate $5,000 in your savings account",
		},
		{
			Type:        AchievementQuiz,
			Title:       "Financial Scholar",
			Description: "Complete all quizzes with perfect scores",
		},
		{
			Type:        AchievementPortfolio,
			Title:       "Diversification Pro",
			Description: "Own shares in all available stocks",
		},
	}
}

func (a *Account) unlock(title string, now time.Time) {
	for i := range a.Achievements {
		if a.Achievements[i].Title == title && !a.Achievements[i].Unlocked {
			a.Achievements[i].Unlocked = true
			t := now
			a.Achievements[i].DateUnlocked = &t
		}
	}
}

// CheckAchievements evaluates all account-state achievements and unlocks
// any whose condition is met. Quiz achievements are unlocked separately
// via UnlockQuizAchievement since the quiz engine owns that state.
func (a *Account) CheckAchievements(now time.Time) {
	if len(a.Investments) > 0 {
		a.unlock("First Investment", now)
	}

	ownedDividend, totalDividend := 0, 0
	for _, s := range a.Stocks {
		if s.DividendYield == nil {
			continue
		}
		totalDividend++
		if a.InvestedIn(s.ID).Sign() > 0 {
			ownedDividend++
		}
	}
	if totalDividend > 0 && ownedDividend == totalDividend {
		a.unlock("Dividend Collector", now)
	}

	totalSavings := decimal.Zero
	for _, sa := range a.SavingsAccounts {
		totalSavings = totalSavings.Add(sa.Balance)
	}
	if totalSavings.Cmp(savingsMasterTarget) >= 0 {
		a.unlock("Savings Master", now)
	}

	owned := 0
	for _, s := range a.Stocks {
		if a.InvestedIn(s.ID).Sign() > 0 {
			owned++
		}
	}
	if len(a.Stocks) > 0 && owned == len(a.Stocks) {
		a.unlock("Diversification Pro", now)
	}
}

// UnlockQuizAchievement marks the quiz achievement unlocked. Called by the
// session once every quiz has a perfect best score.
func (a *Account) UnlockQuizAchievement(now time.Time) {
	a.unlock("Financial Scholar", now)
}
