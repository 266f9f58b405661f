// Package journal stores the executed-trade history in an in-memory DuckDB
// database. The journal is append-only: the venue writes one record per fill
// and queries slice the history for reporting. Nothing is persisted across
// process restarts.
package journal

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/types"
)

type Journal struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewJournal opens an in-memory DuckDB database for trade records.
func NewJournal(log *logger.Logger) (*Journal, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Error("Failed to open journal database", zap.Error(err))

		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	return &Journal{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the trades table.
func (j *Journal) Initialize() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			trade_id TEXT PRIMARY KEY,
			order_id TEXT,
			instrument TEXT,
			side TEXT,
			quantity DOUBLE,
			price DOUBLE,
			amount DOUBLE,
			commission DOUBLE,
			stamp_duty DOUBLE,
			realized_pnl DOUBLE,
			executed_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create trades table: %w", err)
	}

	return nil
}

// Append records one executed trade. A missing TradeID is assigned here so
// callers never need to mint identifiers themselves.
func (j *Journal) Append(trade types.Trade) (types.Trade, error) {
	if trade.TradeID == "" {
		trade.TradeID = uuid.New().String()
	}

	insertQuery := j.sq.
		Insert("trades").
		Columns(
			"trade_id", "order_id", "instrument", "side", "quantity", "price",
			"amount", "commission", "stamp_duty", "realized_pnl", "executed_at",
		).
		Values(
			trade.TradeID, trade.OrderID, trade.Instrument, trade.Side,
			trade.Quantity, trade.Price, trade.Amount, trade.Commission,
			trade.StampDuty, trade.RealizedPnL, trade.ExecutedAt,
		).
		RunWith(j.db)

	if _, err := insertQuery.Exec(); err != nil {
		return types.Trade{}, fmt.Errorf("failed to insert trade: %w", err)
	}

	return trade, nil
}

// GetTrades returns trades matching the filter, oldest first.
func (j *Journal) GetTrades(filter types.TradeFilter) ([]types.Trade, error) {
	query := j.sq.
		Select(
			"trade_id", "order_id", "instrument", "side", "quantity", "price",
			"amount", "commission", "stamp_duty", "realized_pnl", "executed_at",
		).
		From("trades").
		OrderBy("executed_at ASC")

	if filter.Instrument != "" {
		query = query.Where(squirrel.Eq{"instrument": filter.Instrument})
	}

	if filter.Side != "" {
		query = query.Where(squirrel.Eq{"side": string(filter.Side)})
	}

	if !filter.StartTime.IsZero() {
		query = query.Where(squirrel.GtOrEq{"executed_at": filter.StartTime})
	}

	if !filter.EndTime.IsZero() {
		query = query.Where(squirrel.Lt{"executed_at": filter.EndTime})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	rows, err := query.RunWith(j.db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]types.Trade, 0)

	for rows.Next() {
		var trade types.Trade

		err := rows.Scan(
			&trade.TradeID, &trade.OrderID, &trade.Instrument, &trade.Side,
			&trade.Quantity, &trade.Price, &trade.Amount, &trade.Commission,
			&trade.StampDuty, &trade.RealizedPnL, &trade.ExecutedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trades: %w", err)
	}

	return trades, nil
}

// TotalFees sums commission and stamp duty across the whole history.
func (j *Journal) TotalFees() (float64, error) {
	row := j.db.QueryRow(`SELECT COALESCE(SUM(commission + stamp_duty), 0) FROM trades`)

	var total float64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum fees: %w", err)
	}

	return total, nil
}

// TotalRealizedPnL sums realized pnl across the whole history.
func (j *Journal) TotalRealizedPnL() (float64, error) {
	row := j.db.QueryRow(`SELECT COALESCE(SUM(realized_pnl), 0) FROM trades`)

	var total float64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum realized pnl: %w", err)
	}

	return total, nil
}

// Cleanup drops the trades table so the journal can be reinitialized.
func (j *Journal) Cleanup() error {
	_, err := j.db.Exec(`DROP TABLE IF EXISTS trades`)
	if err != nil {
		return fmt.Errorf("failed to drop trades table: %w", err)
	}

	return nil
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}

	return nil
}
