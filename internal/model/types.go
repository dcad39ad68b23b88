package model

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID        string    `json:"id" bson:"_id"`
	ProductID string    `json:"productId" bson:"productId"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Featured  bool      `json:"featured" bson:"featured"`
	Rating    *float64  `json:"rating,omitempty" bson:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Company   string    `json:"company" bson:"company"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		CreatedAt *timestamp `json:"createdAt"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt != nil {
		p.CreatedAt = time.Time(*aux.CreatedAt)
	}
	return nil
}

type User struct {
	ID           string `json:"id" bson:"_id"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"passwordHash"`
}

// ProductPatch holds the fields of a product update. Nil fields are left as stored.
type ProductPatch struct {
	ProductID *string    `json:"productId"`
	Name      *string    `json:"name"`
	Price     *float64   `json:"price"`
	Featured  *bool      `json:"featured"`
	Rating    *float64   `json:"rating"`
	CreatedAt *time.Time `json:"createdAt"`
	Company   *string    `json:"company"`

	// ClearRating removes the stored rating. It is set by "rating": null.
	ClearRating bool `json:"-"`
}

func (p *ProductPatch) UnmarshalJSON(data []byte) error {
	type plain ProductPatch
	aux := struct {
		*plain
		Rating    json.RawMessage `json:"rating"`
		CreatedAt *timestamp      `json:"createdAt"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch {
	case len(aux.Rating) == 0:
	case string(aux.Rating) == "null":
		p.Rating, p.ClearRating = nil, true
	default:
		var r float64
		if err := json.Unmarshal(aux.Rating, &r); err != nil {
			return err
		}
		p.Rating, p.ClearRating = &r, false
	}
	if aux.CreatedAt != nil {
		t := time.Time(*aux.CreatedAt)
		p.CreatedAt = &t
	}
	return nil
}

func (p ProductPatch) Empty() bool {
	return p.ProductID == nil && p.Name == nil && p.Price == nil && p.Featured == nil &&
		p.Rating == nil && !p.ClearRating && p.CreatedAt == nil && p.Company == nil
}

// Apply copies every set field of p onto dst.
func (p ProductPatch) Apply(dst *Product) {
	if p.ProductID != nil {
		dst.ProductID = *p.ProductID
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Featured != nil {
		dst.Featured = *p.Featured
	}
	if p.Rating != nil {
		r := *p.Rating
		dst.Rating = &r
	} else if p.ClearRating {
		dst.Rating = nil
	}
	if p.CreatedAt != nil {
		dst.CreatedAt = *p.CreatedAt
	}
	if p.Company != nil {
		dst.Company = *p.Company
	}
}

// ProductFilter narrows a product listing. A zero filter matches everything.
// MaxPrice and MinRating are strict bounds; products without a rating never
// match a MinRating filter.
type ProductFilter struct {
	Featured  *bool
	MaxPrice  *float64
	MinRating *float64
}

func (f ProductFilter) Match(p *Product) bool {
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.MaxPrice != nil && !(p.Price < *f.MaxPrice) {
		return false
	}
	if f.MinRating != nil && (p.Rating == nil || !(*p.Rating > *f.MinRating)) {
		return false
	}
	return true
}

// ParseTime accepts an RFC 3339 timestamp or a YYYY-MM-DD date.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// timestamp decodes a JSON string with ParseTime. null leaves it unset.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = timestamp(v)
	return nil
}
