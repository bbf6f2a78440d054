package models

// WinnerView is the display form of a winner. The MSISDN is masked here;
// full-precision numbers never leave the core.
type WinnerView struct {
	ID            string        `json:"id"`
	MSISDN        string        `json:"msisdn"`
	PrizeCategory PrizeCategory `json:"prizeCategory"`
	PrizeAmount   float64       `json:"prizeAmount"`
	IsOptedIn     bool          `json:"isOptedIn"`
	IsValid       bool          `json:"isValid"`
	ClaimStatus   ClaimStatus   `json:"claimStatus"`
	WinDate       string        `json:"winDate"`
}

// TierSummary carries the per-tier counts and raw amount totals. Currency
// formatting is the frontend's problem.
type TierSummary struct {
	Category    PrizeCategory `json:"category"`
	Count       int           `json:"count"`
	TotalAmount float64       `json:"totalAmount"`
}

// TierBreakdown partitions a draw's winners into prize tiers for display
type TierBreakdown struct {
	Jackpot     []WinnerView  `json:"jackpot"`
	Secondary   []WinnerView  `json:"secondary"`
	Consolation []WinnerView  `json:"consolation"`
	Summaries   []TierSummary `json:"summaries"`
}

// DrawViewModel is the read-only snapshot the orchestrator exposes to the
// console. LastError holds at most the most recent failed operation; it is
// cleared at the start of every command so stale errors never outlive an
// unrelated successful action.
type DrawViewModel struct {
	SelectedDate      string        `json:"selectedDate"`
	DayOfWeek         string        `json:"dayOfWeek"`
	DrawID            string        `json:"drawId,omitempty"`
	DrawType          DrawType      `json:"drawType"`
	EligibleDigits    []int         `json:"eligibleDigits"`
	UsesDefaultDigits bool          `json:"usesDefaultDigits"`
	ConfigLocked      bool          `json:"configLocked"`
	DrawStatus        DrawStatus    `json:"drawStatus"`
	DegradedDefaults  bool          `json:"degradedDefaults"`
	CountdownSeconds  int64         `json:"countdownSeconds"`
	WinnerTiers       TierBreakdown `json:"winnerTiers"`
	LastError         string        `json:"lastError,omitempty"`
}
