package integration

import (
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/videolibre/vault-ms-go/internal/migration"
	"github.com/videolibre/vault-ms-go/test/testutil"
)

func TestMigrateUpIntegration(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()

	db := testDB.DB

	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	// Give some time for migration to finalize
	time.Sleep(100 * time.Millisecond)

	for _, table := range []string{"videos", "download_requests"} {
		recs := 0
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&recs); err != nil {
			t.Fatalf("failed to query migrated table %q: %v", table, err)
		}
		if recs != 0 {
			t.Errorf("expected 0 rows in %s after migration, got %d", table, recs)
		}
	}

	// the generated dedup column must exist and be indexed
	var cnt int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.statistics
		WHERE table_name = 'download_requests' AND index_name = 'uniq_active_request'
		AND table_schema = DATABASE()`).Scan(&cnt)
	if err != nil {
		t.Fatalf("failed to query index metadata: %v", err)
	}
	if cnt == 0 {
		t.Error("expected uniq_active_request index on download_requests")
	}
}
