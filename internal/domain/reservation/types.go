package reservation

import "strings"

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled:
		return true
	default:
		return false
	}
}

// Category partitions lodging capacity. Stored values are the canonical
// lowercase forms; the legacy synonyms still occur in imported rows and are
// folded into the canonical forms at every ingestion point.
type Category string

const (
	CategoryMale   Category = "masculino"
	CategoryFemale Category = "feminino"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryMale, CategoryFemale:
		return true
	default:
		return false
	}
}

// DisplayLabel is the capitalized form shown in listings and reports.
func (c Category) DisplayLabel() string {
	switch c {
	case CategoryMale:
		return "Masculino"
	case CategoryFemale:
		return "Feminino"
	default:
		return string(c)
	}
}

func NewCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masculino", "homem":
		return CategoryMale, nil
	case "feminino", "mulher":
		return CategoryFemale, nil
	default:
		return "", ErrInvalidCategory
	}
}
