package model

import "github.com/shopspring/decimal"

// Expense is a single outgoing payment.
type Expense struct {
	ID          string          `json:"id" yaml:"id"`
	Date        Date            `json:"date" yaml:"date"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	CategoryID  string          `json:"categoryId" yaml:"categoryId"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// ExpenseCategory groups expenses for reporting.
type ExpenseCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ExpenseBudget is the spending limit for one category in one period.
type ExpenseBudget struct {
	CategoryID string `json:"categoryId" yaml:"categoryId"`

	// Period is the YYYY-MM month the budget applies to. An empty period
	// applies to every month without a more specific budget.
	Period string          `json:"period,omitempty" yaml:"period,omitempty"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}
