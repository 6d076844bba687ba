// Package models defines the domain types for the investment analysis service
package models

import "time"

// Company represents a tracked company and owns its financial period records.
// The period collection is kept in insertion order; chronological order is
// derived from period keys at read time, never stored.
type Company struct {
	ID           string            `json:"id" badgerhold:"key"`
	Name         string            `json:"name"`
	Ticker       string            `json:"ticker,omitempty"`
	Sector       string            `json:"sector,omitempty"`
	Market       string            `json:"market,omitempty"`
	Description  string            `json:"description,omitempty"`
	AnalysisNote string            `json:"analysis_note,omitempty"`
	Financials   []FinancialPeriod `json:"financials"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// FindFinancialByID returns the financial period with the given record ID and
// its index, or (nil, -1) if not present.
func (c *Company) FindFinancialByID(id string) (*FinancialPeriod, int) {
	for i := range c.Financials {
		if c.Financials[i].ID == id {
			return &c.Financials[i], i
		}
	}
	return nil, -1
}

// FindFinancialByPeriodKey returns the financial period with the given period
// key and its index, or (nil, -1) if not present.
func (c *Company) FindFinancialByPeriodKey(key string) (*FinancialPeriod, int) {
	for i := range c.Financials {
		if c.Financials[i].PeriodKey == key {
			return &c.Financials[i], i
		}
	}
	return nil, -1
}

// CompanyInput is the create/update request payload for a company.
type CompanyInput struct {
	Name         string `json:"name"`
	Ticker       string `json:"ticker,omitempty"`
	Sector       string `json:"sector,omitempty"`
	Market       string `json:"market,omitempty"`
	Description  string `json:"description,omitempty"`
	AnalysisNote string `json:"analysis_note,omitempty"`
}

// CompanySummary is the list-view projection of a company (no financials).
type CompanySummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Ticker      string    `json:"ticker,omitempty"`
	Sector      string    `json:"sector,omitempty"`
	Market      string    `json:"market,omitempty"`
	Description string    `json:"description,omitempty"`
	PeriodCount int       `json:"period_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary returns the list-view projection of the company.
func (c *Company) Summary() CompanySummary {
	return CompanySummary{
		ID:          c.ID,
		Name:        c.Name,
		Ticker:      c.Ticker,
		Sector:      c.Sector,
		Market:      c.Market,
		Description: c.Description,
		PeriodCount: len(c.Financials),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
