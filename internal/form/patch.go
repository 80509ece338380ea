// internal/form/patch.go
package form

// Patch is a partial applicant record. Nil fields are absent and leave the
// current value untouched; set fields win (last-write-wins). Derived fields
// (FLAG_MOBIL, FLAG_EMAIL, AMT_INCOME_TOTAL, REG_REGION_NOT_WORK_REGION,
// AMT_ANNUITY) are intentionally absent: they are recomputed by the
// transforms in derive.go and can never be patched directly.
type Patch struct {
	FullName         *string
	CodeGender       *string
	NameFamilyStatus *string
	HasChildren      *string
	CntChildren      *int
	DaysBirth        *int
	PhoneNumber      *string
	Email            *string
	Province         *string
	Ward             *string
	RegionRating     *int
	RegionRatingCity *int
	RegionPopulation *float64
	FacebookHandle   *string

	FlagOwnRealty   *string
	NameHousingType *string
	FlagOwnCar      *string
	OwnCarAge       *int

	NameContractType *string
	AmtCredit        *float64
	HasPurchase      *string
	AmtGoodsPrice    *float64

	NameEducationType *string
	NameIncomeType    *string
	IncomeMonthly     *float64
	OccupationType    *string
	OrganizationType  *string
	WorkProvince      *string
	WorkWard          *string
}

// IsZero reports whether the patch carries no fields at all.
func (p *Patch) IsZero() bool {
	return *p == Patch{}
}
