// internal/form/prefill.go
package form

// Demo personas for prefilling a session. Applying a persona goes through
// the normal patch reducer, so the derived fields come out consistent by
// construction.

type Persona struct {
	Name  string
	Patch Patch
}

func str(v string) *string   { return &v }
func num(v int) *int         { return &v }
func flt(v float64) *float64 { return &v }

// Personas returns the built-in demo applicants.
func Personas() []Persona {
	return []Persona{
		{
			Name: "young-genz-student",
			Patch: Patch{
				FullName:          str("Nguyễn Thị Mai"),
				CodeGender:        str("F"),
				NameFamilyStatus:  str("Single / not married"),
				HasChildren:       str("No"),
				CntChildren:       num(0),
				DaysBirth:         num(-7300), // ~20 years old
				PhoneNumber:       str("0987654321"),
				Email:             str("mai.nguyen@gmail.com"),
				Province:          str("Đồng Nai"),
				Ward:              str("Phường Biên Hòa"),
				RegionRating:      num(1),
				RegionRatingCity:  num(1),
				RegionPopulation:  flt(0.325355652),
				FlagOwnRealty:     str("N"),
				NameHousingType:   str("Rented apartment"),
				FlagOwnCar:        str("N"),
				NameEducationType: str("Higher education"),
				NameIncomeType:    str("Student"),
				IncomeMonthly:     flt(2000000),
				OccupationType:    str("Student"),
				OrganizationType:  str("School"),
				WorkProvince:      str("Hồ Chí Minh"),
				WorkWard:          str("Phường Vũng Tàu"),
			},
		},
		{
			Name: "middle-aged-worker",
			Patch: Patch{
				FullName:          str("Trần Văn Minh"),
				CodeGender:        str("M"),
				NameFamilyStatus:  str("Separated"),
				HasChildren:       str("Yes"),
				CntChildren:       num(2),
				DaysBirth:         num(-16425), // ~45 years old
				PhoneNumber:       str("0912345678"),
				Email:             str("minh.tran@yahoo.com"),
				Province:          str("Hồ Chí Minh"),
				Ward:              str("Phường Vũng Tàu"),
				RegionRating:      num(1),
				RegionRatingCity:  num(1),
				RegionPopulation:  flt(1.0),
				FlagOwnRealty:     str("Y"),
				NameHousingType:   str("House / apartment"),
				FlagOwnCar:        str("N"),
				NameEducationType: str("Secondary / secondary special"),
				NameIncomeType:    str("Working"),
				IncomeMonthly:     flt(15000000),
				OccupationType:    str("Laborers"),
				OrganizationType:  str("Business Entity Type 3"),
				WorkProvince:      str("Hồ Chí Minh"),
				WorkWard:          str("Phường Tam Thắng"),
			},
		},
		{
			Name: "retired-nurse",
			Patch: Patch{
				FullName:          str("Lê Thị Hồng"),
				CodeGender:        str("F"),
				NameFamilyStatus:  str("Widow"),
				HasChildren:       str("Yes"),
				CntChildren:       num(3),
				DaysBirth:         num(-23725), // ~65 years old
				PhoneNumber:       str("0903456789"),
				Email:             str("hong.le@gmail.com"),
				Province:          str("Đồng Nai"),
				Ward:              str("Phường Trấn Biên"),
				RegionRating:      num(1),
				RegionRatingCity:  num(1),
				RegionPopulation:  flt(0.325355652),
				FlagOwnRealty:     str("N"),
				NameHousingType:   str("Rented apartment"),
				FlagOwnCar:        str("N"),
				NameEducationType: str("Higher education"),
				NameIncomeType:    str("Pensioner"),
				IncomeMonthly:     flt(8000000),
				OccupationType:    str("Medicine staff"),
				OrganizationType:  str("Government"),
				WorkProvince:      str("Đồng Nai"),
				WorkWard:          str("Phường Trấn Biên"),
			},
		},
	}
}

// FindPersona returns the named persona, or false if unknown.
func FindPersona(name string) (Persona, bool) {
	for _, p := range Personas() {
		if p.Name == name {
			return p, true
		}
	}
	return Persona{}, false
}
