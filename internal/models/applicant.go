// internal/models/applicant.go
package models

// ApplicantRecord is the single mutable aggregate for an intake session.
// Nil pointer fields are unset and omitted from the outbound payload.
// Upper-snake field names form the canonical machine-readable subset sent
// to the scoring service; the camelCase fields are session-local inputs.
type ApplicantRecord struct {
	// Personal information
	FullName         *string  `json:"fullName,omitempty"`
	CodeGender       *string  `json:"CODE_GENDER,omitempty"`
	NameFamilyStatus *string  `json:"NAME_FAMILY_STATUS,omitempty"`
	HasChildren      *string  `json:"hasChildren,omitempty"`
	CntChildren      *int     `json:"CNT_CHILDREN,omitempty"`
	DaysBirth        *int     `json:"DAYS_BIRTH,omitempty"`
	PhoneNumber      *string  `json:"phoneNumber,omitempty"`
	FlagMobil        *int     `json:"FLAG_MOBIL,omitempty"`
	Email            *string  `json:"email,omitempty"`
	FlagEmail        *int     `json:"FLAG_EMAIL,omitempty"`
	Province         *string  `json:"province,omitempty"`
	Ward             *string  `json:"ward,omitempty"`
	RegionRating     *int     `json:"REGION_RATING_CLIENT,omitempty"`
	RegionRatingCity *int     `json:"REGION_RATING_CLIENT_W_CITY,omitempty"`
	RegionPopulation *float64 `json:"REGION_POPULATION_RELATIVE,omitempty"`
	FacebookHandle   *string  `json:"facebookHandle,omitempty"`

	// Personal property
	FlagOwnRealty   *string `json:"FLAG_OWN_REALTY,omitempty"` // "Y" or "N"
	NameHousingType *string `json:"NAME_HOUSING_TYPE,omitempty"`
	FlagOwnCar      *string `json:"FLAG_OWN_CAR,omitempty"` // "Y" or "N"
	OwnCarAge       *int    `json:"OWN_CAR_AGE,omitempty"`

	// Loan information
	NameContractType *string  `json:"NAME_CONTRACT_TYPE,omitempty"`
	AmtCredit        *float64 `json:"AMT_CREDIT,omitempty"`
	HasPurchase      *string  `json:"hasPurchase,omitempty"` // "yes" or "no"
	AmtGoodsPrice    *float64 `json:"AMT_GOODS_PRICE,omitempty"`
	AmtAnnuity       *float64 `json:"AMT_ANNUITY,omitempty"`

	// Professional profile
	NameEducationType *string  `json:"NAME_EDUCATION_TYPE,omitempty"`
	NameIncomeType    *string  `json:"NAME_INCOME_TYPE,omitempty"`
	AmtIncomeTotal    *float64 `json:"AMT_INCOME_TOTAL,omitempty"`
	IncomeMonthly     *float64 `json:"incomeMonthly,omitempty"`
	OccupationType    *string  `json:"OCCUPATION_TYPE,omitempty"`
	OrganizationType  *string  `json:"ORGANIZATION_TYPE,omitempty"`
	WorkProvince      *string  `json:"workProvince,omitempty"`
	WorkWard          *string  `json:"workWard,omitempty"`
	RegionMismatch    *int     `json:"REG_REGION_NOT_WORK_REGION,omitempty"`

	// Submission timing
	WeekdayApprProcessStart *string `json:"WEEKDAY_APPR_PROCESS_START,omitempty"`
	HourApprProcessStart    *int    `json:"HOUR_APPR_PROCESS_START,omitempty"`

	// File manifest: successfully uploaded documents, unique by storage key.
	FileUploads []FileUpload `json:"file_uploads,omitempty"`
}

// FileUpload is one manifest row describing an uploaded document.
type FileUpload struct {
	Filename    string `json:"filename"`
	S3Key       string `json:"s3_key"`
	ContentType string `json:"content_type"`
}

// Clone returns a deep copy of the record. Pointer fields are reallocated
// so mutating the copy never touches the original.
func (r *ApplicantRecord) Clone() *ApplicantRecord {
	out := *r
	out.FullName = cloneString(r.FullName)
	out.CodeGender = cloneString(r.CodeGender)
	out.NameFamilyStatus = cloneString(r.NameFamilyStatus)
	out.HasChildren = cloneString(r.HasChildren)
	out.CntChildren = cloneInt(r.CntChildren)
	out.DaysBirth = cloneInt(r.DaysBirth)
	out.PhoneNumber = cloneString(r.PhoneNumber)
	out.FlagMobil = cloneInt(r.FlagMobil)
	out.Email = cloneString(r.Email)
	out.FlagEmail = cloneInt(r.FlagEmail)
	out.Province = cloneString(r.Province)
	out.Ward = cloneString(r.Ward)
	out.RegionRating = cloneInt(r.RegionRating)
	out.RegionRatingCity = cloneInt(r.RegionRatingCity)
	out.RegionPopulation = cloneFloat(r.RegionPopulation)
	out.FacebookHandle = cloneString(r.FacebookHandle)
	out.FlagOwnRealty = cloneString(r.FlagOwnRealty)
	out.NameHousingType = cloneString(r.NameHousingType)
	out.FlagOwnCar = cloneString(r.FlagOwnCar)
	out.OwnCarAge = cloneInt(r.OwnCarAge)
	out.NameContractType = cloneString(r.NameContractType)
	out.AmtCredit = cloneFloat(r.AmtCredit)
	out.HasPurchase = cloneString(r.HasPurchase)
	out.AmtGoodsPrice = cloneFloat(r.AmtGoodsPrice)
	out.AmtAnnuity = cloneFloat(r.AmtAnnuity)
	out.NameEducationType = cloneString(r.NameEducationType)
	out.NameIncomeType = cloneString(r.NameIncomeType)
	out.AmtIncomeTotal = cloneFloat(r.AmtIncomeTotal)
	out.IncomeMonthly = cloneFloat(r.IncomeMonthly)
	out.OccupationType = cloneString(r.OccupationType)
	out.OrganizationType = cloneString(r.OrganizationType)
	out.WorkProvince = cloneString(r.WorkProvince)
	out.WorkWard = cloneString(r.WorkWard)
	out.RegionMismatch = cloneInt(r.RegionMismatch)
	out.WeekdayApprProcessStart = cloneString(r.WeekdayApprProcessStart)
	out.HourApprProcessStart = cloneInt(r.HourApprProcessStart)
	if r.FileUploads != nil {
		out.FileUploads = make([]FileUpload, len(r.FileUploads))
		copy(out.FileUploads, r.FileUploads)
	}
	return &out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
