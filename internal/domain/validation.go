package domain

// TransactionValidation is the verdict the validation rules produce for one
// parsed transaction. IsValid is true exactly when Errors is empty; warnings
// never affect validity.
type TransactionValidation struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}
