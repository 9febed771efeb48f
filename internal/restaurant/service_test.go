package restaurant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreepawar22/quickserve/internal/restaurant"
	"github.com/shreepawar22/quickserve/internal/storage"
)

func seedRestaurant(t *testing.T, repo restaurant.Repository) restaurant.Restaurant {
	t.Helper()
	r := restaurant.Restaurant{
		ID:      "rest-1",
		Name:    "Spice Garden",
		Cuisine: "South Indian",
		Tables: []restaurant.Table{
			{ID: "table-1", Number: "1", Capacity: 4, Status: restaurant.TableFree},
			{ID: "table-2", Number: "2", Capacity: 2, Status: restaurant.TableFree},
		},
	}
	require.NoError(t, repo.Save(r))
	return r
}

func TestService_AddTable(t *testing.T) {
	repo := restaurant.NewRepository(storage.NewMemory())
	svc := restaurant.NewService(repo)
	seedRestaurant(t, repo)

	table, err := svc.AddTable("rest-1", "3", 6, restaurant.TableFree)
	require.NoError(t, err)
	assert.NotEmpty(t, table.ID)
	assert.Equal(t, "3", table.Number)

	stored, err := repo.ByID("rest-1")
	require.NoError(t, err)
	assert.Len(t, stored.Tables, 3)
}

func TestService_AddTable_DuplicateNumber(t *testing.T) {
	repo := restaurant.NewRepository(storage.NewMemory())
	svc := restaurant.NewService(repo)
	seedRestaurant(t, repo)

	_, err := svc.AddTable("rest-1", "2", 4, restaurant.TableFree)
	assert.ErrorIs(t, err, restaurant.ErrTableNumberTaken)

	stored, err := repo.ByID("rest-1")
	require.NoError(t, err)
	assert.Len(t, stored.Tables, 2, "a rejected add must not change the tables")
}

func TestService_AddTable_InvalidCapacity(t *testing.T) {
	repo := restaurant.NewRepository(storage.NewMemory())
	svc := restaurant.NewService(repo)
	seedRestaurant(t, repo)

	_, err := svc.AddTable("rest-1", "9", 0, restaurant.TableFree)
	assert.ErrorIs(t, err, restaurant.ErrInvalidCapacity)
}

func TestService_UpdateTableStatus(t *testing.T) {
	repo := restaurant.NewRepository(storage.NewMemory())
	svc := restaurant.NewService(repo)
	seedRestaurant(t, repo)

	table, err := svc.UpdateTableStatus("rest-1", "table-1", restaurant.TableReserved)
	require.NoError(t, err)
	assert.Equal(t, restaurant.TableReserved, table.Status)

	_, err = svc.UpdateTableStatus("rest-1", "table-1", restaurant.TableStatus("occupied"))
	assert.Error(t, err, "unknown statuses are rejected")

	_, err = svc.UpdateTableStatus("rest-1", "table-missing", restaurant.TableFree)
	assert.ErrorIs(t, err, restaurant.ErrTableNotFound)
}

func TestService_ClaimTable(t *testing.T) {
	store := storage.NewMemory()
	repo := restaurant.NewRepository(store)
	svc := restaurant.NewService(repo)
	seedRestaurant(t, repo)

	claimed, err := svc.ClaimTable("rest-1", "table-2", restaurant.TableBooked)
	require.NoError(t, err)
	assert.Equal(t, restaurant.TableBooked, claimed.Status)
	assert.Equal(t, "2", claimed.Number)

	marker, err := repo.TablesMarker()
	require.NoError(t, err)
	assert.NotEmpty(t, marker, "claiming a table bumps the tables marker")
}

func TestService_DisplayName(t *testing.T) {
	repo := restaurant.NewRepository(storage.NewMemory())
	svc := restaurant.NewService(repo)
	seedRestaurant(t, repo)

	assert.Equal(t, "Spice Garden", svc.DisplayName("rest-1"))
	assert.Equal(t, restaurant.PlaceholderName, svc.DisplayName("rest-deleted"),
		"a dangling restaurant reference falls back to a placeholder")
}
