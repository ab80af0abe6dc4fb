package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"crm/internal/domain"
	"crm/internal/logger"
)

type customerRow struct {
	ID    int64   `gorm:"primaryKey"`
	Name  string  `gorm:"not null"`
	Email string  `gorm:"size:255;uniqueIndex;not null"`
	Phone *string `gorm:"size:32"`
}

func (customerRow) TableName() string { return "customers" }

type productRow struct {
	ID    int64           `gorm:"primaryKey"`
	Name  string          `gorm:"not null"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock int64           `gorm:"not null;default:0"`
}

func (productRow) TableName() string { return "products" }

type orderRow struct {
	ID          int64           `gorm:"primaryKey"`
	CustomerID  int64           `gorm:"index;not null"`
	Products    []productRow    `gorm:"many2many:order_products;joinForeignKey:OrderID;joinReferences:ProductID"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	OrderDate   time.Time       `gorm:"index;not null"`
}

func (orderRow) TableName() string { return "orders" }

// OpenGorm подключается к БД выбранного драйвера и применяет миграции
func OpenGorm(driver, dsn string, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if strings.EqualFold(driver, "sqlite") {
		// SQLite only supports one writer at a time
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("Auto migrating tables...", "driver", driver)
	if err := db.AutoMigrate(&customerRow{}, &productRow{}, &orderRow{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate database: %w", err)
	}
	if ddl := emailCollationDDL(driver); ddl != "" {
		if err := db.Exec(ddl).Error; err != nil {
			return nil, fmt.Errorf("failed to set email collation: %w", err)
		}
	}
	return db, nil
}

// emailCollationDDL makes email comparisons case-sensitive on engines whose
// default collation is not. MODIFY keeps the unique index.
func emailCollationDDL(driver string) string {
	if strings.EqualFold(driver, "mysql") {
		return "ALTER TABLE customers MODIFY email VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"
	}
	return ""
}

// NewGormStores собирает все репозитории поверх одного *gorm.DB
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Customers: &GormCustomers{db: db},
		Products:  &GormProducts{db: db},
		Orders:    &GormOrders{db: db},
		Tx:        &GormTx{db: db},
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

type gormTxKey struct{}

// GormTx кладёт открытую транзакцию в контекст; репозитории берут её оттуда.
type GormTx struct{ db *gorm.DB }

func (t *GormTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, gormTxKey{}, tx))
	})
}

func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func orderBy(q *gorm.DB, s Sort) *gorm.DB {
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.column()}, Desc: s.Desc})
	if s.column() != "id" {
		q = q.Order("id")
	}
	return q
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(strings.ToLower(err.Error()), "unique constraint"):
		return ErrDuplicateKey
	default:
		return err
	}
}

type GormCustomers struct{ db *gorm.DB }

var _ CustomerRepository = (*GormCustomers)(nil)

func (r *GormCustomers) Create(ctx context.Context, c *domain.Customer) error {
	row := customerRow{Name: c.Name, Email: c.Email, Phone: c.Phone}
	if err := conn(ctx, r.db).Create(&row).Error; err != nil {
		return translate(err)
	}
	c.ID = row.ID
	return nil
}

func (r *GormCustomers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var row customerRow
	if err := conn(ctx, r.db).First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	c := row.toDomain()
	return &c, nil
}

func (r *GormCustomers) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&customerRow{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCustomers) List(ctx context.Context, f CustomerFilter) ([]domain.Customer, error) {
	q := conn(ctx, r.db).Model(&customerRow{})
	if f.NameSubstring != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.NameSubstring)+"%")
	}
	var rows []customerRow
	if err := orderBy(q, f.OrderBy).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GormCustomers) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&customerRow{}).Count(&count).Error
	return count, err
}

func (row customerRow) toDomain() domain.Customer {
	return domain.Customer{ID: row.ID, Name: row.Name, Email: row.Email, Phone: row.Phone}
}

type GormProducts struct{ db *gorm.DB }

var _ ProductRepository = (*GormProducts)(nil)

func (r *GormProducts) Create(ctx context.Context, p *domain.Product) error {
	row := productRow{Name: p.Name, Price: p.Price, Stock: p.Stock}
	if err := conn(ctx, r.db).Create(&row).Error; err != nil {
		return translate(err)
	}
	p.ID = row.ID
	return nil
}

func (r *GormProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row productRow
	if err := conn(ctx, r.db).First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	p := row.toDomain()
	return &p, nil
}

func (r *GormProducts) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []productRow
	if err := conn(ctx, r.db).
		Where("id IN ?", dedupeIDs(ids)).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GormProducts) Update(ctx context.Context, p *domain.Product) error {
	db := conn(ctx, r.db)
	var count int64
	if err := db.Model(&productRow{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return db.Model(&productRow{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{"name": p.Name, "price": p.Price, "stock": p.Stock}).Error
}

func (r *GormProducts) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	q := conn(ctx, r.db).Model(&productRow{})
	if f.NameSubstring != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.NameSubstring)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.StockBelow != nil {
		q = q.Where("stock < ?", *f.StockBelow)
	}
	var rows []productRow
	if err := orderBy(q, f.OrderBy).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (row productRow) toDomain() domain.Product {
	return domain.Product{ID: row.ID, Name: row.Name, Price: row.Price, Stock: row.Stock}
}

type GormOrders struct{ db *gorm.DB }

var _ OrderRepository = (*GormOrders)(nil)

func (r *GormOrders) Create(ctx context.Context, o *domain.Order) error {
	row := orderRow{
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate.UTC(),
	}
	for _, id := range o.ProductIDs {
		row.Products = append(row.Products, productRow{ID: id})
	}
	// only join rows are written, product rows stay untouched
	if err := conn(ctx, r.db).Omit("Products.*").Create(&row).Error; err != nil {
		return translate(err)
	}
	o.ID = row.ID
	return nil
}

func (r *GormOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var row orderRow
	if err := conn(ctx, r.db).Preload("Products").First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	o := row.toDomain()
	return &o, nil
}

func (r *GormOrders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	q := conn(ctx, r.db).Model(&orderRow{}).Preload("Products")
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.OrderDateGte != nil {
		q = q.Where("order_date >= ?", f.OrderDateGte.UTC())
	}
	if f.OrderDateLte != nil {
		q = q.Where("order_date <= ?", f.OrderDateLte.UTC())
	}
	var rows []orderRow
	if err := orderBy(q, f.OrderBy).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GormOrders) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&orderRow{}).Count(&count).Error
	return count, err
}

func (r *GormOrders) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := conn(ctx, r.db).
		Model(&orderRow{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().
		Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}

func (row orderRow) toDomain() domain.Order {
	ids := make([]int64, 0, len(row.Products))
	for _, p := range row.Products {
		ids = append(ids, p.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return domain.Order{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		ProductIDs:  ids,
		TotalAmount: row.TotalAmount,
		OrderDate:   row.OrderDate.UTC(),
	}
}
