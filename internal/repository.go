package internal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DrGermanius/Storefront/internal/model"
)

const (
	orderFields = "o.id, o.code, o.status, o.total, o.address, o.phone, o.vendor_id, o.buyer_id, o.created_at, o.updated_at, " +
		"i.name, i.quantity, i.unit_price, i.image_ref"
	statusLogFields = "id, order_id, status, changed_by, changed_at"
)

type IRepository interface {
	GetOrders(context.Context, model.OrderFilter) ([]model.Order, error)
	GetOrderByID(context.Context, int64) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, from, to model.Status, changedBy string) error
	GetStatusHistory(context.Context, int64) ([]model.StatusLog, error)
}

type Repository struct {
	Conn   *sql.DB
	Logger *zap.SugaredLogger
}

func NewRepository(connString string, logger *zap.SugaredLogger) (*Repository, error) {
	conn, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}

	if err = conn.Ping(); err != nil {
		return nil, err
	}

	if err = Migrate(conn); err != nil {
		return nil, err
	}

	return &Repository{Conn: conn, Logger: logger}, nil
}

func (r Repository) GetOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	rows, err := r.Conn.QueryContext(ctx, "SELECT "+orderFields+" FROM orders o LEFT JOIN order_items i ON i.order_id = o.id "+
		"WHERE ($1::bigint = 0 OR o.vendor_id = $1) AND ($2::bigint = 0 OR o.buyer_id = $2) AND ($3::text = '' OR o.status = $3) "+
		"ORDER BY o.created_at DESC, o.id, i.position", f.VendorID, f.BuyerID, string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r Repository) GetOrderByID(ctx context.Context, id int64) (model.Order, error) {
	rows, err := r.Conn.QueryContext(ctx, "SELECT "+orderFields+" FROM orders o LEFT JOIN order_items i ON i.order_id = o.id "+
		"WHERE o.id = $1 ORDER BY i.position", id)
	if err != nil {
		return model.Order{}, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return model.Order{}, err
	}
	if len(orders) == 0 {
		return model.Order{}, ErrOrderNotFound
	}

	return orders[0], nil
}

// UpdateOrderStatus moves the order from -> to only if it is still in from,
// and records the change in order_status_log within the same transaction.
func (r Repository) UpdateOrderStatus(ctx context.Context, id int64, from, to model.Status, changedBy string) error {
	tx, err := r.Conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	res, err := tx.ExecContext(ctx, "UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4", string(to), now, id, string(from))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		r.Logger.Debugf("UpdateOrderStatus conflict: order %d is no longer %s", id, from)
		return ErrStatusConflict
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO order_status_log (order_id, status, changed_by, changed_at) VALUES ($1, $2, $3, $4)", id, string(to), changedBy, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r Repository) GetStatusHistory(ctx context.Context, id int64) ([]model.StatusLog, error) {
	rows, err := r.Conn.QueryContext(ctx, "SELECT "+statusLogFields+" FROM order_status_log WHERE order_id = $1 ORDER BY changed_at ASC, id ASC", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.StatusLog
	for rows.Next() {
		var l model.StatusLog
		var status string
		err = rows.Scan(&l.ID, &l.OrderID, &status, &l.ChangedBy, &l.ChangedAt)
		if err != nil {
			return nil, err
		}
		l.Status = model.Status(status)

		logs = append(logs, l)
	}

	return logs, rows.Err()
}

// scanOrders folds the orders x order_items join back into orders, keeping row order.
func scanOrders(rows *sql.Rows) ([]model.Order, error) {
	var orders []model.Order
	index := make(map[int64]int)

	for rows.Next() {
		var (
			o         model.Order
			status    string
			total     decimal.Decimal
			name      sql.NullString
			quantity  sql.NullInt64
			unitPrice decimal.NullDecimal
			imageRef  sql.NullString
		)

		err := rows.Scan(&o.ID, &o.Code, &status, &total, &o.Address, &o.Phone, &o.VendorID, &o.BuyerID, &o.CreatedAt, &o.UpdatedAt,
			&name, &quantity, &unitPrice, &imageRef)
		if err != nil {
			return nil, err
		}

		pos, ok := index[o.ID]
		if !ok {
			o.Status = model.Status(status)
			if o.Total, err = toAmount(total); err != nil {
				return nil, err
			}
			pos = len(orders)
			index[o.ID] = pos
			orders = append(orders, o)
		}

		if !name.Valid {
			continue
		}

		if !unitPrice.Valid {
			return nil, fmt.Errorf("%w: order %d item without price", ErrMalformedOrder, o.ID)
		}
		price, err := toAmount(unitPrice.Decimal)
		if err != nil {
			return nil, err
		}

		orders[pos].Items = append(orders[pos].Items, model.Item{
			Name:      name.String,
			Quantity:  int(quantity.Int64),
			UnitPrice: price,
			ImageRef:  imageRef.String,
		})
	}

	return orders, rows.Err()
}

// toAmount converts a NUMERIC money value to the smallest currency unit.
func toAmount(d decimal.Decimal) (int64, error) {
	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: amount %s", ErrMalformedOrder, d.String())
	}
	return d.IntPart(), nil
}
