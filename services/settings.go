package services

// SiteSettings is the typed configuration record behind the settings
// collection. One row exists per key; the admin API upserts it explicitly
// instead of mutating ambient globals.
type SiteSettings struct {
	Key            string `json:"key"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	GSTIN          string `json:"gstin"`
	QuotePrefix    string `json:"quote_prefix"`
	QuoteTerms     string `json:"quote_terms"`
}

// SiteSettingsKey is the fixed key of the single site-wide settings row.
const SiteSettingsKey = "site"

// DefaultSiteSettings returns the values seeded on first boot.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Key:         SiteSettingsKey,
		CompanyName: "Stallion IT Solutions",
		QuotePrefix: "SIT-Q",
		QuoteTerms:  "Prices valid for 15 days. Installation charges included unless noted.",
	}
}
