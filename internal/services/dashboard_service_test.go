package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/repos"
	"shopfront/internal/services"
)

func dashboardFixtures(t *testing.T) *services.DashboardService {
	t.Helper()
	db := memdb(t)
	seedCatalog(t, db)
	if _, err := db.Exec(`
	  INSERT INTO users(id,email,name,password_hash,role)
	  VALUES ('u-1','tester@shopfront.test','Tester','x','USER');
	  INSERT INTO orders(id,user_id,subtotal,discount,total,status,shipping_address,created_at) VALUES
	    ('o-1','u-1','100.50','0','100.50','PENDING',  '12 Elm St','2026-07-05 08:00:00'),
	    ('o-2','u-1','49.50', '0','49.50', 'DELIVERED','12 Elm St','2026-07-20 08:00:00'),
	    ('o-3','u-1','200',   '0','200',   'PAID',     '12 Elm St','2026-08-02 08:00:00'),
	    ('o-4','u-1','999',   '0','999',   'CANCELLED','12 Elm St','2026-08-03 08:00:00');
	`); err != nil {
		t.Fatal(err)
	}
	return services.NewDashboardService(
		repos.NewUserRepo(db), repos.NewProductRepo(db), repos.NewStatsRepo(db), nil)
}

func TestDashboardStats(t *testing.T) {
	svc := dashboardFixtures(t)

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)

	// u-admin from bootstrap plus u-1
	assert.Equal(t, 2, st.Users)
	// gbc-001 and nes-001; old-001 is inactive
	assert.Equal(t, 2, st.Products)
	assert.Equal(t, 4, st.Orders)
	assert.Equal(t, 1, st.PendingOrders)

	// cancelled orders never count toward revenue
	assert.True(t, st.Revenue.Equal(decimal.NewFromInt(350)), "revenue %s", st.Revenue)

	require.Len(t, st.LowStock, 1)
	assert.Equal(t, "nes-001", st.LowStock[0].ID)

	// newest month first, same-month orders folded together
	require.Len(t, st.MonthlySales, 2)
	assert.Equal(t, "2026-08", st.MonthlySales[0].Month)
	assert.Equal(t, 1, st.MonthlySales[0].Orders)
	assert.True(t, st.MonthlySales[0].Revenue.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "2026-07", st.MonthlySales[1].Month)
	assert.Equal(t, 2, st.MonthlySales[1].Orders)
	assert.True(t, st.MonthlySales[1].Revenue.Equal(decimal.NewFromInt(150)))
}

func TestDashboardStats_MonthWindow(t *testing.T) {
	svc := dashboardFixtures(t)
	svc.Months = 1

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, st.MonthlySales, 1)
	assert.Equal(t, "2026-08", st.MonthlySales[0].Month)
}
