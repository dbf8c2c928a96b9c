package entity

// RugCheckReport is the summary report RugCheck returns for a Solana mint.
type RugCheckReport struct {
	Score int            `json:"score"`
	Risks []RugCheckRisk `json:"risks"`
}

// RugCheckRisk is a single flag inside a RugCheck report.
// Level is usually "danger", "warn" or "info".
type RugCheckRisk struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Value       string `json:"value"`
}

// GoPlusResponse is the envelope of the GoPlus token_security endpoint.
// Result is keyed by the lower-cased contract address.
type GoPlusResponse struct {
	Code    int                            `json:"code"`
	Message string                         `json:"message"`
	Result  map[string]GoPlusTokenSecurity `json:"result"`
}

// GoPlusTokenSecurity holds the flags we read from a GoPlus report.
// GoPlus encodes booleans as "0" / "1" strings.
type GoPlusTokenSecurity struct {
	IsHoneypot   string `json:"is_honeypot"`
	IsMintable   string `json:"is_mintable"`
	IsOpenSource string `json:"is_open_source"`
	BuyTax       string `json:"buy_tax"`
	SellTax      string `json:"sell_tax"`
}

// Honeypot reports whether GoPlus flagged the token as a honeypot.
func (s GoPlusTokenSecurity) Honeypot() bool { return s.IsHoneypot == "1" }

// Mintable reports whether GoPlus flagged the token supply as mintable.
func (s GoPlusTokenSecurity) Mintable() bool { return s.IsMintable == "1" }
