// Package tiers partitions a draw's winner list into prize tiers and
// prepares the masked display forms the console renders.
package tiers

import (
	"sort"
	"time"

	"github.com/bridgetunes/draw-console-backend/internal/models"
)

// maskPlaceholder replaces the middle four characters of an MSISDN
const maskPlaceholder = "****"

// Partitioned holds a winner list split by prize category. Order within
// each tier is the insertion order of the source list; the engine's
// ordering is not second-guessed.
type Partitioned struct {
	Jackpot     []models.Winner
	Secondary   []models.Winner
	Consolation []models.Winner
}

// Partition splits winners by prize category. The function is total: every
// winner lands in exactly one tier, with unrecognised categories grouped
// under consolation.
func Partition(winners []models.Winner) Partitioned {
	var p Partitioned
	for _, w := range winners {
		switch w.PrizeCategory {
		case models.CategoryJackpot:
			p.Jackpot = append(p.Jackpot, w)
		case models.CategorySecondary:
			p.Secondary = append(p.Secondary, w)
		default:
			p.Consolation = append(p.Consolation, w)
		}
	}
	return p
}

// SortByWinDateDesc returns a copy of winners ordered newest first. Used
// when winners from several draws are shown together; the sort is stable so
// same-instant winners keep their source order.
func SortByWinDateDesc(winners []models.Winner) []models.Winner {
	out := make([]models.Winner, len(winners))
	copy(out, winners)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WinDate.After(out[j].WinDate)
	})
	return out
}

// MaskMSISDN hides the middle four characters of a phone number, keeping
// the first len-7 and last 3 visible. Inputs shorter than 7 characters are
// returned unchanged; that fallback is a display convenience, not a
// security control.
func MaskMSISDN(msisdn string) string {
	if len(msisdn) < 7 {
		return msisdn
	}
	return msisdn[:len(msisdn)-7] + maskPlaceholder + msisdn[len(msisdn)-3:]
}

// Breakdown builds the display-ready tier view for a single draw's winners:
// partitioned, masked, with per-tier counts and raw amount totals.
func Breakdown(winners []models.Winner) models.TierBreakdown {
	p := Partition(winners)
	return models.TierBreakdown{
		Jackpot:     views(p.Jackpot),
		Secondary:   views(p.Secondary),
		Consolation: views(p.Consolation),
		Summaries: []models.TierSummary{
			summary(models.CategoryJackpot, p.Jackpot),
			summary(models.CategorySecondary, p.Secondary),
			summary(models.CategoryConsolation, p.Consolation),
		},
	}
}

func views(winners []models.Winner) []models.WinnerView {
	out := make([]models.WinnerView, 0, len(winners))
	for _, w := range winners {
		out = append(out, models.WinnerView{
			ID:            w.ID,
			MSISDN:        MaskMSISDN(w.MSISDN),
			PrizeCategory: w.PrizeCategory,
			PrizeAmount:   w.PrizeAmount,
			IsOptedIn:     w.IsOptedIn,
			IsValid:       w.IsValid,
			ClaimStatus:   w.ClaimStatus,
			WinDate:       w.WinDate.Format(time.RFC3339),
		})
	}
	return out
}

func summary(category models.PrizeCategory, winners []models.Winner) models.TierSummary {
	s := models.TierSummary{Category: category, Count: len(winners)}
	for _, w := range winners {
		s.TotalAmount += w.PrizeAmount
	}
	return s
}
