//go:build integration

package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *Client

// TestMain starts one SurrealDB container for all store tests.
func TestMain(m *testing.M) {
	// ryuk breaks in some CI sandboxes
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// testcontainers may report "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	port, err := container.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	testDB, err = NewClient(ctx, Config{
		URL:       fmt.Sprintf("ws://%s:%s/rpc", host, port.Port()),
		Namespace: "test",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthLevel: "root",
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := testDB.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	code := m.Run()

	_ = testDB.Close(ctx)
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func resetDB(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	require.NoError(t, testDB.WipeData(ctx))
	return ctx
}

func sampleOrders() []*models.WorkOrder {
	return []*models.WorkOrder{
		{ID: "WO-1", Seq: 0, Description: "Floor 3 Room 305A leak", Floor: "3", Room: "305A", AgeDays: models.IntPtr(5), Status: models.StatusComplete, BuildingCode: "0548", BuildingName: "ETB", Fields: map[string]string{"Work Order": "WO-1"}},
		{ID: "WO-2", Seq: 1, Description: "Room 014 light", Floor: "B", Room: "014", Status: models.StatusPending},
	}
}

func TestSaveAndLoadWorkOrders(t *testing.T) {
	ctx := resetDB(t)

	var calls []int
	err := testDB.SaveWorkOrders(ctx, "run-1", sampleOrders(), func(done, total int) {
		calls = append(calls, done)
		assert.Equal(t, 2, total)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, calls)

	loaded, err := testDB.LoadWorkOrders(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "WO-1", loaded[0].ID)
	assert.Equal(t, "305A", loaded[0].Room)
	require.NotNil(t, loaded[0].AgeDays)
	assert.Equal(t, 5, *loaded[0].AgeDays)
	assert.Equal(t, "WO-1", loaded[0].Fields["Work Order"])
	assert.Nil(t, loaded[1].AgeDays)
}

func TestSaveKeepsStoredStatusWhenBlank(t *testing.T) {
	ctx := resetDB(t)
	require.NoError(t, testDB.SaveWorkOrders(ctx, "run-1", sampleOrders(), nil))

	next := sampleOrders()
	next[0].Status = ""
	next[0].AgeDays = models.IntPtr(9)
	require.NoError(t, testDB.SaveWorkOrders(ctx, "run-2", next, nil))

	wo, err := testDB.GetWorkOrder(ctx, "WO-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, wo.Status)
	assert.Equal(t, 9, *wo.AgeDays, "derived fields are overwritten")

	statuses, err := testDB.LoadStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Status{
		"WO-1": models.StatusComplete,
		"WO-2": models.StatusPending,
	}, statuses)
}

func TestGetWorkOrderNotFound(t *testing.T) {
	ctx := resetDB(t)
	_, err := testDB.GetWorkOrder(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountByStatusAndPrune(t *testing.T) {
	ctx := resetDB(t)
	require.NoError(t, testDB.SaveWorkOrders(ctx, "run-1", sampleOrders(), nil))
	require.NoError(t, testDB.SaveWorkOrders(ctx, "run-2", sampleOrders()[:1], nil))

	counts, err := testDB.CountByStatus(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []StatusCount{
		{Status: "Complete", Count: 1},
		{Status: "Pending", Count: 1},
	}, counts)

	n, err := testDB.PruneStale(ctx, "run-2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = testDB.PruneStale(ctx, "run-2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveAndListRuns(t *testing.T) {
	ctx := resetDB(t)

	mean := 12.5
	for i := range 3 {
		require.NoError(t, testDB.SaveRun(ctx, "export.csv", models.Dashboard{
			RunID: fmt.Sprintf("run-%d", i),
			AsOf:  "2024-03-11",
			Overall: models.DashboardSummary{
				Total:        10 + i,
				ByStatus:     map[models.Status]int{models.StatusPending: 10 + i},
				MeanAge:      &mean,
				OverdueCount: i,
			},
		}))
	}

	runs, err := testDB.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "export.csv", runs[0].Source)
	assert.Equal(t, "2024-03-11", runs[0].AsOf)
}
