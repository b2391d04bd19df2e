package services_test

import (
	"fmt"
	"strings"
	"testing"

	"backend/entity"
	"backend/repository"
	"backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// in-memory sqlite แยกต่อ test — ใช้ชื่อ test เป็นชื่อ DB กันชนกัน
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Branch{}, &entity.Table{}, &entity.Customer{},
		&entity.MenuCategory{}, &entity.Menu{}, &entity.Order{}, &entity.OrderItem{},
	))
	return db
}

type fixture struct {
	db     *gorm.DB
	branch entity.Branch
	table  entity.Table
	menu1  entity.Menu // 45,000
	menu2  entity.Menu // 65,000
	pub    *recordingPublisher
	inv    *recordingInvalidator
	svc    *services.OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{db: db, pub: &recordingPublisher{}, inv: &recordingInvalidator{}}

	f.branch = entity.Branch{Name: "B1"}
	require.NoError(t, db.Create(&f.branch).Error)

	f.table = entity.Table{Number: 1, BranchID: f.branch.ID, Status: entity.TableAvailable}
	require.NoError(t, db.Create(&f.table).Error)

	f.menu1 = entity.Menu{Name: "Grilled Chicken Rice", Price: 45000, Available: true, BranchID: f.branch.ID}
	f.menu2 = entity.Menu{Name: "Beef Noodle Soup", Price: 65000, Available: true, BranchID: f.branch.ID}
	require.NoError(t, db.Create(&f.menu1).Error)
	require.NoError(t, db.Create(&f.menu2).Error)

	f.svc = services.NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewTableRepository(db),
		repository.NewMenuRepository(db),
		f.pub,
		f.inv,
	)
	return f
}

func (f *fixture) tableStatus(t *testing.T) string {
	t.Helper()
	var tbl entity.Table
	require.NoError(t, f.db.First(&tbl, f.table.ID).Error)
	return tbl.Status
}

func (f *fixture) tableIDStr() string {
	return fmt.Sprintf("%d", f.table.ID)
}

// ---------------- fakes ----------------

type recordingPublisher struct {
	created []*services.OrderSnapshot
	orders  []*entity.Order
	items   []*entity.OrderItem
}

func (p *recordingPublisher) PublishOrderCreated(s *services.OrderSnapshot) {
	p.created = append(p.created, s)
}
func (p *recordingPublisher) PublishOrderStatus(o *entity.Order) {
	cp := *o
	p.orders = append(p.orders, &cp)
}
func (p *recordingPublisher) PublishItemStatus(o *entity.Order, it *entity.OrderItem) {
	cp := *it
	p.items = append(p.items, &cp)
}

type recordingInvalidator struct{ keys []string }

func (r *recordingInvalidator) Invalidate(keys ...string) {
	r.keys = append(r.keys, keys...)
}

// ---------------- tests ----------------

func TestCreateOrderTotals(t *testing.T) {
	f := newFixture(t)

	snap, err := f.svc.Create(&services.CreateOrderReq{
		TableID: f.tableIDStr(),
		Items: []services.OrderItemIn{
			{MenuID: f.menu1.ID, Qty: 2},
			{MenuID: f.menu2.ID, Qty: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(155000), snap.Subtotal)
	assert.Equal(t, int64(0), snap.Discount)
	assert.Equal(t, int64(15500), snap.Tax)
	assert.Equal(t, int64(170500), snap.Total)
	assert.Equal(t, snap.Subtotal-snap.Discount+snap.Tax, snap.Total)
	assert.Equal(t, entity.OrderPending, snap.Status)
	assert.Equal(t, entity.PaymentPending, snap.PaymentStatus)
	assert.Equal(t, f.branch.ID, snap.BranchID)
	assert.Equal(t, 1, snap.TableNumber)
	assert.True(t, strings.HasPrefix(snap.OrderNo, "ORD-"))

	// subtotal ต้องเท่ากับผลรวมของ items
	var sum int64
	for _, it := range snap.Items {
		sum += it.Subtotal
		assert.Equal(t, it.UnitPrice*int64(it.Qty), it.Subtotal)
		assert.Equal(t, entity.ItemPending, it.Status)
	}
	assert.Equal(t, snap.Subtotal, sum)

	// ชื่อเมนูถูก snapshot มาในรายการ
	assert.Equal(t, "Grilled Chicken Rice", snap.Items[0].ProductName)
	assert.Equal(t, "Beef Noodle Soup", snap.Items[1].ProductName)

	// โต๊ะถูก occupy และ event ออกครั้งเดียว
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t))
	require.Len(t, f.pub.created, 1)
	assert.Equal(t, snap.ID, f.pub.created[0].ID)
	assert.NotEmpty(t, f.inv.keys)
}

func TestCreateOrderPriceFromCatalogNotClient(t *testing.T) {
	f := newFixture(t)

	// เปลี่ยนราคาหลังสั่งแล้ว snapshot ของออเดอร์เดิมต้องไม่ขยับ
	snap, err := f.svc.Create(&services.CreateOrderReq{
		TableID: f.tableIDStr(),
		Items:   []services.OrderItemIn{{MenuID: f.menu1.ID, Qty: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&entity.Menu{}).Where("id = ?", f.menu1.ID).
		Update("price", 99000).Error)

	again, err := f.svc.GetSnapshot(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), again.Items[0].UnitPrice)
}

func TestCreateOrderUnavailableProduct(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&entity.Menu{}).Where("id = ?", f.menu2.ID).
		Update("available", false).Error)

	_, err := f.svc.Create(&services.CreateOrderReq{
		TableID: f.tableIDStr(),
		Items: []services.OrderItemIn{
			{MenuID: f.menu1.ID, Qty: 1},
			{MenuID: f.menu2.ID, Qty: 1},
		},
	})

	var puErr *services.ProductUnavailableError
	require.ErrorAs(t, err, &puErr)
	assert.Equal(t, "Beef Noodle Soup", puErr.Name)

	// ต้องไม่มีแถวไหนหลุดลง DB และโต๊ะไม่ถูกแตะ
	var orders, items int64
	f.db.Model(&entity.Order{}).Count(&orders)
	f.db.Model(&entity.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t))
	assert.Empty(t, f.pub.created)
}

func TestCreateOrderPlaceholderTableID(t *testing.T) {
	f := newFixture(t)

	for _, raw := range []string{"", "0", "undefined", "null", "{{TABLE_ID}}", "not-a-number"} {
		_, err := f.svc.Create(&services.CreateOrderReq{
			TableID: raw,
			Items:   []services.OrderItemIn{{MenuID: f.menu1.ID, Qty: 1}},
		})
		var tblErr *services.InvalidTableError
		require.ErrorAs(t, err, &tblErr, "tableId %q", raw)
	}
}

func TestCreateOrderUnknownTable(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(&services.CreateOrderReq{
		TableID: "9999",
		Items:   []services.OrderItemIn{{MenuID: f.menu1.ID, Qty: 1}},
	})
	var nfErr *services.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "table", nfErr.Resource)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(&services.CreateOrderReq{TableID: f.tableIDStr()})
	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCreateOrderZeroQty(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(&services.CreateOrderReq{
		TableID: f.tableIDStr(),
		Items:   []services.OrderItemIn{{MenuID: f.menu1.ID, Qty: 0}},
	})
	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(&services.CreateOrderReq{
		TableID: f.tableIDStr(),
		Items:   []services.OrderItemIn{{MenuID: 4242, Qty: 1}},
	})
	var nfErr *services.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "product", nfErr.Resource)
}

func TestCreateOrderBranchResolvedFromTable(t *testing.T) {
	f := newFixture(t)

	snap, err := f.svc.Create(&services.CreateOrderReq{
		TableID: f.tableIDStr(), // ไม่ส่ง branchId มา
		Items:   []services.OrderItemIn{{MenuID: f.menu1.ID, Qty: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, f.branch.ID, snap.BranchID)
}

func TestCreateOrderNumbersDistinct(t *testing.T) {
	f := newFixture(t)

	req := &services.CreateOrderReq{
		TableID: f.tableIDStr(),
		Items:   []services.OrderItemIn{{MenuID: f.menu1.ID, Qty: 1}},
	}
	a, err := f.svc.Create(req)
	require.NoError(t, err)
	b, err := f.svc.Create(req)
	require.NoError(t, err)

	// สั่งสองออเดอร์เวลาติดกันต้องได้เลขไม่ซ้ำ (มี random suffix)
	assert.NotEqual(t, a.OrderNo, b.OrderNo)
}

func TestTwoOrdersOnSameTableBothSucceed(t *testing.T) {
	f := newFixture(t)

	req := &services.CreateOrderReq{
		TableID: f.tableIDStr(),
		Items:   []services.OrderItemIn{{MenuID: f.menu1.ID, Qty: 1}},
	}
	_, err := f.svc.Create(req)
	require.NoError(t, err)
	_, err = f.svc.Create(req)
	require.NoError(t, err)

	var orders int64
	f.db.Model(&entity.Order{}).Count(&orders)
	assert.Equal(t, int64(2), orders)
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t))
}
