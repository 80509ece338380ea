// internal/form/store.go
package form

import (
	"sync"

	"credit-intake/internal/common/logger"
	"credit-intake/internal/models"
)

// Store holds the applicant record for one intake session. ApplyPatch
// merges partial updates field by field and re-runs only the derivation
// transforms whose inputs the patch touched. All methods are safe for
// concurrent use; upload goroutines append manifest rows while the wizard
// patches fields.
type Store struct {
	mu     sync.RWMutex
	rec    *models.ApplicantRecord
	logger logger.Logger

	subMu   sync.Mutex
	subs    map[int]func(*models.ApplicantRecord)
	nextSub int
}

func NewStore(log logger.Logger) *Store {
	return &Store{
		rec:    &models.ApplicantRecord{},
		logger: log.WithFields(map[string]interface{}{"component": "form-store"}),
		subs:   make(map[int]func(*models.ApplicantRecord)),
	}
}

// ApplyPatch merges the patch into the record (last-write-wins per field)
// and recomputes the derived fields affected by it. Never fails.
func (s *Store) ApplyPatch(p Patch) {
	// An empty patch changes nothing; skip the merge and don't wake
	// subscribers.
	if p.IsZero() {
		return
	}

	s.mu.Lock()
	rec := s.rec

	if p.FullName != nil {
		rec.FullName = p.FullName
	}
	if p.CodeGender != nil {
		rec.CodeGender = p.CodeGender
	}
	if p.NameFamilyStatus != nil {
		rec.NameFamilyStatus = p.NameFamilyStatus
	}
	if p.HasChildren != nil {
		rec.HasChildren = p.HasChildren
	}
	if p.CntChildren != nil {
		rec.CntChildren = p.CntChildren
	}
	if p.DaysBirth != nil {
		rec.DaysBirth = p.DaysBirth
	}
	if p.PhoneNumber != nil {
		rec.PhoneNumber = p.PhoneNumber
	}
	if p.Email != nil {
		rec.Email = p.Email
	}
	if p.Province != nil {
		rec.Province = p.Province
	}
	if p.Ward != nil {
		rec.Ward = p.Ward
	}
	if p.RegionRating != nil {
		rec.RegionRating = p.RegionRating
	}
	if p.RegionRatingCity != nil {
		rec.RegionRatingCity = p.RegionRatingCity
	}
	if p.RegionPopulation != nil {
		rec.RegionPopulation = p.RegionPopulation
	}
	if p.FacebookHandle != nil {
		rec.FacebookHandle = p.FacebookHandle
	}
	if p.FlagOwnRealty != nil {
		rec.FlagOwnRealty = p.FlagOwnRealty
	}
	if p.NameHousingType != nil {
		rec.NameHousingType = p.NameHousingType
	}
	if p.FlagOwnCar != nil {
		rec.FlagOwnCar = p.FlagOwnCar
	}
	if p.OwnCarAge != nil {
		rec.OwnCarAge = p.OwnCarAge
	}
	if p.NameContractType != nil {
		rec.NameContractType = p.NameContractType
	}
	if p.AmtCredit != nil {
		rec.AmtCredit = p.AmtCredit
	}
	if p.HasPurchase != nil {
		rec.HasPurchase = p.HasPurchase
	}
	if p.AmtGoodsPrice != nil {
		rec.AmtGoodsPrice = p.AmtGoodsPrice
	}
	if p.NameEducationType != nil {
		rec.NameEducationType = p.NameEducationType
	}
	if p.NameIncomeType != nil {
		rec.NameIncomeType = p.NameIncomeType
	}
	if p.IncomeMonthly != nil {
		rec.IncomeMonthly = p.IncomeMonthly
	}
	if p.OccupationType != nil {
		rec.OccupationType = p.OccupationType
	}
	if p.OrganizationType != nil {
		rec.OrganizationType = p.OrganizationType
	}
	if p.WorkProvince != nil {
		rec.WorkProvince = p.WorkProvince
	}
	if p.WorkWard != nil {
		rec.WorkWard = p.WorkWard
	}

	// Recompute only the derivations whose inputs changed.
	if p.IncomeMonthly != nil {
		DeriveAnnualIncome(rec)
	}
	if p.PhoneNumber != nil {
		DeriveHasPhone(rec)
	}
	if p.Email != nil {
		DeriveHasEmail(rec)
	}
	if p.Province != nil || p.WorkProvince != nil {
		DeriveRegionMismatch(rec)
	}
	if p.AmtCredit != nil {
		DeriveAnnuity(rec)
	}

	snapshot := rec.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Reset replaces the record with the empty record and clears the manifest.
func (s *Store) Reset() {
	s.mu.Lock()
	s.rec = &models.ApplicantRecord{}
	snapshot := s.rec.Clone()
	s.mu.Unlock()

	s.logger.Info("form reset", nil)
	s.notify(snapshot)
}

// Snapshot returns a deep copy of the current record.
func (s *Store) Snapshot() *models.ApplicantRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Clone()
}

// AppendFile adds a manifest row for a successfully uploaded document.
// Rows are unique by storage key; a duplicate key is ignored.
func (s *Store) AppendFile(f models.FileUpload) {
	s.mu.Lock()
	for _, existing := range s.rec.FileUploads {
		if existing.S3Key == f.S3Key {
			s.mu.Unlock()
			return
		}
	}
	s.rec.FileUploads = append(s.rec.FileUploads, f)
	snapshot := s.rec.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

// RemoveFile removes the manifest row with the given storage key, if any.
// It reports whether a row was removed.
func (s *Store) RemoveFile(s3Key string) bool {
	s.mu.Lock()
	removed := false
	kept := s.rec.FileUploads[:0]
	for _, f := range s.rec.FileUploads {
		if f.S3Key == s3Key && !removed {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	s.rec.FileUploads = kept
	if len(s.rec.FileUploads) == 0 {
		s.rec.FileUploads = nil
	}
	snapshot := s.rec.Clone()
	s.mu.Unlock()

	if removed {
		s.notify(snapshot)
	}
	return removed
}

// Subscribe registers fn to be called with a snapshot after every
// mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(*models.ApplicantRecord)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(snapshot *models.ApplicantRecord) {
	s.subMu.Lock()
	fns := make([]func(*models.ApplicantRecord), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
