// internal/form/derive.go
package form

import (
	"strings"

	"credit-intake/internal/models"
)

// Derivation rules. Each transform recomputes exactly one derived field
// from the record's primitive inputs. The reducer in store.go invokes a
// transform only when the patch touched one of its inputs.

// DeriveAnnualIncome sets AMT_INCOME_TOTAL to incomeMonthly * 12.
// Invoked whenever incomeMonthly is patched.
func DeriveAnnualIncome(rec *models.ApplicantRecord) {
	if rec.IncomeMonthly == nil {
		rec.AmtIncomeTotal = nil
		return
	}
	annual := *rec.IncomeMonthly * 12
	rec.AmtIncomeTotal = &annual
}

// DeriveHasPhone sets FLAG_MOBIL to 1 iff phoneNumber is non-empty after
// trimming, 0 otherwise. Invoked whenever phoneNumber is patched.
func DeriveHasPhone(rec *models.ApplicantRecord) {
	flag := 0
	if rec.PhoneNumber != nil && strings.TrimSpace(*rec.PhoneNumber) != "" {
		flag = 1
	}
	rec.FlagMobil = &flag
}

// DeriveHasEmail sets FLAG_EMAIL to 1 iff email is non-empty after
// trimming, 0 otherwise. Invoked whenever email is patched.
func DeriveHasEmail(rec *models.ApplicantRecord) {
	flag := 0
	if rec.Email != nil && strings.TrimSpace(*rec.Email) != "" {
		flag = 1
	}
	rec.FlagEmail = &flag
}

// DeriveRegionMismatch sets REG_REGION_NOT_WORK_REGION to 1 iff home and
// work provinces are both set and differ, 0 iff both set and equal, and
// unsets it when either is missing. A blank or whitespace-only province
// counts as missing. Invoked whenever province or workProvince is patched.
func DeriveRegionMismatch(rec *models.ApplicantRecord) {
	if blank(rec.Province) || blank(rec.WorkProvince) {
		rec.RegionMismatch = nil
		return
	}
	mismatch := 0
	if *rec.Province != *rec.WorkProvince {
		mismatch = 1
	}
	rec.RegionMismatch = &mismatch
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// annuityTermMonths is the assumed even-installment term used to estimate
// AMT_ANNUITY from the requested amount.
const annuityTermMonths = 24

// DeriveAnnuity sets AMT_ANNUITY to the estimated monthly installment for
// the requested amount. Invoked whenever AMT_CREDIT is patched.
func DeriveAnnuity(rec *models.ApplicantRecord) {
	if rec.AmtCredit == nil {
		rec.AmtAnnuity = nil
		return
	}
	annuity := *rec.AmtCredit / annuityTermMonths
	rec.AmtAnnuity = &annuity
}
