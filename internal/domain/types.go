package domain

import (
	"io"
	"strings"
)

// Category is the fixed enumeration a vendor is filed under.
type Category string

const (
	CategoryRestaurant  Category = "Restaurant"
	CategoryCafe        Category = "Cafe"
	CategoryBakery      Category = "Bakery"
	CategoryGrocery     Category = "Grocery"
	CategoryClothing    Category = "Clothing"
	CategoryElectronics Category = "Electronics"
	CategoryPharmacy    Category = "Pharmacy"
	CategorySalon       Category = "Salon"
	CategoryOther       Category = "Other"
)

// CategoryAll is the filter sentinel that matches every vendor.
const CategoryAll = "all"

// Categories lists the enumeration in display order.
var Categories = []Category{
	CategoryRestaurant,
	CategoryCafe,
	CategoryBakery,
	CategoryGrocery,
	CategoryClothing,
	CategoryElectronics,
	CategoryPharmacy,
	CategorySalon,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string form of the category.
func (c Category) String() string { return string(c) }

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Vendor is a shop profile as served by the directory listing.
type Vendor struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Image       string      `json:"image,omitempty"`
	Location    string      `json:"location,omitempty"`
	Rating      *float64    `json:"rating,omitempty"`
	Offers      string      `json:"offers,omitempty"`
	Contact     string      `json:"contact,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
}

// VendorPatch is a partial profile update. Nil fields are left unchanged.
type VendorPatch struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Category    *Category   `json:"category,omitempty"`
	Image       *string     `json:"image,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Offers      *string     `json:"offers,omitempty"`
	Contact     *string     `json:"contact,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p VendorPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Image == nil && p.Location == nil && p.Offers == nil &&
		p.Contact == nil && p.Coordinates == nil
}

// Apply returns a copy of v with the non-nil fields of p applied.
func (p VendorPatch) Apply(v Vendor) Vendor {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Category != nil {
		v.Category = *p.Category
	}
	if p.Image != nil {
		v.Image = *p.Image
	}
	if p.Location != nil {
		v.Location = *p.Location
	}
	if p.Offers != nil {
		v.Offers = *p.Offers
	}
	if p.Contact != nil {
		v.Contact = *p.Contact
	}
	if p.Coordinates != nil {
		c := *p.Coordinates
		v.Coordinates = &c
	}
	return v
}

// TempIDPrefix marks menu item ids assigned locally before the server confirms.
const TempIDPrefix = "tmp-"

// MenuItem is a single product or deal offered by a vendor.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Discount    *float64 `json:"discount,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Pending reports whether the item still carries a client-side temporary id.
func (m MenuItem) Pending() bool { return strings.HasPrefix(m.ID, TempIDPrefix) }

// MenuDraft carries the user-editable fields of a menu item.
type MenuDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Discount    *float64 `json:"discount,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Item builds a MenuItem with the given id from the draft.
func (d MenuDraft) Item(id string) MenuItem {
	return MenuItem{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Discount:    d.Discount,
		Category:    d.Category,
	}
}

// Credentials are the login form values.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the shop sign-up form. Image is optional.
type Registration struct {
	VendorName     string
	Email          string
	ShopName       string
	Description    string
	Location       string
	Phone          string
	Category       Category
	Password       string
	RetypePassword string

	ImageName string
	Image     io.Reader
}

// AuthResult is the body returned by login and registration.
type AuthResult struct {
	Token   string  `json:"token"`
	Vendor  *Vendor `json:"vendor,omitempty"`
	Message string  `json:"message,omitempty"`
}

// FormField is a plain multipart form value.
type FormField struct {
	Name  string
	Value string
}

// FormFile is a multipart file part.
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// MultipartForm is an ordered multipart/form-data body.
type MultipartForm struct {
	Fields []FormField
	Files  []FormFile
}
