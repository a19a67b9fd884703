package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type PartnerType string

const (
	PartnerNormal  PartnerType = "normal"
	PartnerSpecial PartnerType = "special"
)

func (t PartnerType) Valid() bool {
	return t == PartnerNormal || t == PartnerSpecial
}

// Partner is a reseller record. Besides the core fields it carries a fixed
// set of optional string attributes, enumerated by PartnerAttr. Unknown keys
// sent by the backend are dropped on decode.
type Partner struct {
	ID       ID          `json:"id,omitempty"`
	Name     string      `json:"firstName"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Address  string      `json:"address"`
	Type     PartnerType `json:"type"`
	Verified bool        `json:"verified"`

	Designation    string `json:"designation,omitempty"`
	ReferredBy     string `json:"reffered,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyAddress string `json:"companyAddress,omitempty"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
	City           string `json:"city,omitempty"`
	CompanyEmail   string `json:"companyemail,omitempty"`
	CompanyPhone   string `json:"companyphone,omitempty"`
	Country        string `json:"country,omitempty"`
	BusinessPhone  string `json:"businessphone,omitempty"`
	Expertise      string `json:"expertise,omitempty"`
	Industries     string `json:"industries,omitempty"`
	DirectorName   string `json:"directorName,omitempty"`
	DirectorEmail  string `json:"directorEmail,omitempty"`
	DirectorPhone  string `json:"directorPhone,omitempty"`
	DirectorWPhone string `json:"directorWPhone,omitempty"`
}

// PartnerAttr names one optional partner attribute by its wire key.
type PartnerAttr string

const (
	AttrDesignation    PartnerAttr = "designation"
	AttrReferredBy     PartnerAttr = "reffered"
	AttrCompanyName    PartnerAttr = "companyName"
	AttrCompanyAddress PartnerAttr = "companyAddress"
	AttrCompanyWebsite PartnerAttr = "companyWebsite"
	AttrCity           PartnerAttr = "city"
	AttrCompanyEmail   PartnerAttr = "companyemail"
	AttrCompanyPhone   PartnerAttr = "companyphone"
	AttrCountry        PartnerAttr = "country"
	AttrBusinessPhone  PartnerAttr = "businessphone"
	AttrExpertise      PartnerAttr = "expertise"
	AttrIndustries     PartnerAttr = "industries"
	AttrDirectorName   PartnerAttr = "directorName"
	AttrDirectorEmail  PartnerAttr = "directorEmail"
	AttrDirectorPhone  PartnerAttr = "directorPhone"
	AttrDirectorWPhone PartnerAttr = "directorWPhone"
)

// PartnerAttrs lists the optional attributes in display order.
var PartnerAttrs = []struct {
	Attr  PartnerAttr
	Label string
}{
	{AttrDesignation, "Designation"},
	{AttrReferredBy, "Referred by"},
	{AttrCompanyName, "Company name"},
	{AttrCompanyAddress, "Company address"},
	{AttrCompanyWebsite, "Company website"},
	{AttrCity, "City"},
	{AttrCountry, "Country"},
	{AttrCompanyEmail, "Company email"},
	{AttrCompanyPhone, "Company phone"},
	{AttrBusinessPhone, "Business phone"},
	{AttrExpertise, "Expertise"},
	{AttrIndustries, "Industries"},
	{AttrDirectorName, "Director name"},
	{AttrDirectorEmail, "Director email"},
	{AttrDirectorPhone, "Director phone"},
	{AttrDirectorWPhone, "Director WhatsApp"},
}

// Attr returns a pointer to the attribute's field, or nil for an unknown name.
func (p *Partner) Attr(a PartnerAttr) *string {
	switch a {
	case AttrDesignation:
		return &p.Designation
	case AttrReferredBy:
		return &p.ReferredBy
	case AttrCompanyName:
		return &p.CompanyName
	case AttrCompanyAddress:
		return &p.CompanyAddress
	case AttrCompanyWebsite:
		return &p.CompanyWebsite
	case AttrCity:
		return &p.City
	case AttrCompanyEmail:
		return &p.CompanyEmail
	case AttrCompanyPhone:
		return &p.CompanyPhone
	case AttrCountry:
		return &p.Country
	case AttrBusinessPhone:
		return &p.BusinessPhone
	case AttrExpertise:
		return &p.Expertise
	case AttrIndustries:
		return &p.Industries
	case AttrDirectorName:
		return &p.DirectorName
	case AttrDirectorEmail:
		return &p.DirectorEmail
	case AttrDirectorPhone:
		return &p.DirectorPhone
	case AttrDirectorWPhone:
		return &p.DirectorWPhone
	default:
		return nil
	}
}

// PartnerFromRecord decodes one loosely typed partner record. Numeric ids,
// "true"/1 verified flags and null attributes are accepted.
func PartnerFromRecord(rec map[string]any) (Partner, error) {
	var p Partner
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return Partner{}, err
	}
	if err := dec.Decode(rec); err != nil {
		return Partner{}, fmt.Errorf("decode partner: %w", err)
	}
	if p.Type == "" {
		p.Type = PartnerNormal
	}
	return p, nil
}
