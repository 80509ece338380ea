// internal/form/store_test.go
package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-intake/internal/common/logger"
	"credit-intake/internal/models"
)

func createTestStore(t *testing.T) *Store {
	return NewStore(logger.NewTestLogger(t))
}

// ==========================
// Patch Merge Tests
// ==========================

func TestStore_ApplyPatch_MergesFieldByField(t *testing.T) {
	store := createTestStore(t)

	store.ApplyPatch(Patch{FullName: str("Nguyễn Thị Mai"), Province: str("Đồng Nai")})
	store.ApplyPatch(Patch{Province: str("Hà Nội")})

	rec := store.Snapshot()
	require.NotNil(t, rec.FullName)
	assert.Equal(t, "Nguyễn Thị Mai", *rec.FullName, "untouched field survives later patches")
	require.NotNil(t, rec.Province)
	assert.Equal(t, "Hà Nội", *rec.Province, "patched field is last-write-wins")
}

func TestStore_ApplyPatch_EmptyPatchIsNoOp(t *testing.T) {
	store := createTestStore(t)
	store.ApplyPatch(Patch{Email: str("mai@example.com")})
	before := store.Snapshot()

	notified := 0
	unsubscribe := store.Subscribe(func(*models.ApplicantRecord) { notified++ })
	defer unsubscribe()

	store.ApplyPatch(Patch{})

	after := store.Snapshot()
	assert.Equal(t, before, after)
	assert.Zero(t, notified, "empty patch must not wake subscribers")
}

func TestPatch_IsZero(t *testing.T) {
	empty := Patch{}
	assert.True(t, empty.IsZero())

	withField := Patch{Email: str("mai@example.com")}
	assert.False(t, withField.IsZero())
}

func TestStore_ApplyPatch_RunsDerivations(t *testing.T) {
	store := createTestStore(t)

	store.ApplyPatch(Patch{
		IncomeMonthly: flt(8000000),
		PhoneNumber:   str("0901234567"),
		Email:         str(""),
		Province:      str("Đồng Nai"),
		WorkProvince:  str("Hồ Chí Minh"),
		AmtCredit:     flt(48000000),
	})

	rec := store.Snapshot()
	require.NotNil(t, rec.AmtIncomeTotal)
	assert.Equal(t, float64(96000000), *rec.AmtIncomeTotal)
	require.NotNil(t, rec.FlagMobil)
	assert.Equal(t, 1, *rec.FlagMobil)
	require.NotNil(t, rec.FlagEmail)
	assert.Equal(t, 0, *rec.FlagEmail)
	require.NotNil(t, rec.RegionMismatch)
	assert.Equal(t, 1, *rec.RegionMismatch)
	require.NotNil(t, rec.AmtAnnuity)
	assert.Equal(t, float64(2000000), *rec.AmtAnnuity)
}

func TestStore_ApplyPatch_DerivationsTrackLaterPatches(t *testing.T) {
	store := createTestStore(t)

	store.ApplyPatch(Patch{Province: str("Hà Nội"), WorkProvince: str("Hà Nội")})
	rec := store.Snapshot()
	require.NotNil(t, rec.RegionMismatch)
	assert.Equal(t, 0, *rec.RegionMismatch)

	store.ApplyPatch(Patch{WorkProvince: str("Hồ Chí Minh")})
	rec = store.Snapshot()
	require.NotNil(t, rec.RegionMismatch)
	assert.Equal(t, 1, *rec.RegionMismatch)
}

func TestStore_ApplyPatch_UntouchedDerivationsStayPut(t *testing.T) {
	store := createTestStore(t)
	store.ApplyPatch(Patch{IncomeMonthly: flt(5000000)})

	// A patch not touching income must not recompute or clear the annual.
	store.ApplyPatch(Patch{FullName: str("Trần Văn Minh")})

	rec := store.Snapshot()
	require.NotNil(t, rec.AmtIncomeTotal)
	assert.Equal(t, float64(60000000), *rec.AmtIncomeTotal)
}

// ==========================
// Reset and Snapshot Tests
// ==========================

func TestStore_Reset_ClearsRecordAndManifest(t *testing.T) {
	store := createTestStore(t)
	store.ApplyPatch(Patch{FullName: str("Lê Thị Hồng")})
	store.AppendFile(models.FileUpload{Filename: "doc.pdf", S3Key: "k1.pdf", ContentType: "application/pdf"})

	store.Reset()

	rec := store.Snapshot()
	assert.Nil(t, rec.FullName)
	assert.Empty(t, rec.FileUploads)
}

func TestStore_Snapshot_IsDetached(t *testing.T) {
	store := createTestStore(t)
	store.ApplyPatch(Patch{FullName: str("Nguyễn Thị Mai")})

	snap := store.Snapshot()
	*snap.FullName = "mutated"
	snap.FileUploads = append(snap.FileUploads, models.FileUpload{S3Key: "rogue"})

	rec := store.Snapshot()
	assert.Equal(t, "Nguyễn Thị Mai", *rec.FullName)
	assert.Empty(t, rec.FileUploads)
}

// ==========================
// Manifest Tests
// ==========================

func TestStore_AppendFile_UniqueByKey(t *testing.T) {
	store := createTestStore(t)
	row := models.FileUpload{Filename: "doc.pdf", S3Key: "k1.pdf", ContentType: "application/pdf"}

	store.AppendFile(row)
	store.AppendFile(row)
	store.AppendFile(models.FileUpload{Filename: "other.txt", S3Key: "k2.txt", ContentType: "text/plain"})

	rec := store.Snapshot()
	require.Len(t, rec.FileUploads, 2)
	assert.Equal(t, "k1.pdf", rec.FileUploads[0].S3Key)
	assert.Equal(t, "k2.txt", rec.FileUploads[1].S3Key)
}

func TestStore_RemoveFile(t *testing.T) {
	store := createTestStore(t)
	store.AppendFile(models.FileUpload{Filename: "a.pdf", S3Key: "ka.pdf"})
	store.AppendFile(models.FileUpload{Filename: "b.pdf", S3Key: "kb.pdf"})

	assert.True(t, store.RemoveFile("ka.pdf"))
	assert.False(t, store.RemoveFile("ka.pdf"), "second removal finds nothing")
	assert.False(t, store.RemoveFile("missing"))

	rec := store.Snapshot()
	require.Len(t, rec.FileUploads, 1)
	assert.Equal(t, "kb.pdf", rec.FileUploads[0].S3Key)
}

// ==========================
// Subscription Tests
// ==========================

func TestStore_Subscribe_NotifiesOnMutation(t *testing.T) {
	store := createTestStore(t)

	var got []*models.ApplicantRecord
	unsubscribe := store.Subscribe(func(rec *models.ApplicantRecord) {
		got = append(got, rec)
	})

	store.ApplyPatch(Patch{Email: str("mai@example.com")})
	store.AppendFile(models.FileUpload{Filename: "doc.txt", S3Key: "k.txt"})

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Email)
	assert.Equal(t, "mai@example.com", *got[0].Email)
	assert.Len(t, got[1].FileUploads, 1)

	unsubscribe()
	store.Reset()
	assert.Len(t, got, 2, "no notifications after unsubscribe")
}

// ==========================
// Persona Tests
// ==========================

func TestPersonas_DerivedFieldsConsistent(t *testing.T) {
	for _, persona := range Personas() {
		t.Run(persona.Name, func(t *testing.T) {
			store := createTestStore(t)
			store.ApplyPatch(persona.Patch)
			rec := store.Snapshot()

			require.NotNil(t, rec.IncomeMonthly)
			require.NotNil(t, rec.AmtIncomeTotal)
			assert.Equal(t, *rec.IncomeMonthly*12, *rec.AmtIncomeTotal)
			require.NotNil(t, rec.FlagMobil)
			assert.Equal(t, 1, *rec.FlagMobil)
		})
	}
}

func TestFindPersona(t *testing.T) {
	_, ok := FindPersona("young-genz-student")
	assert.True(t, ok)
	_, ok = FindPersona("nobody")
	assert.False(t, ok)
}
