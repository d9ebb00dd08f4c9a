package repo

import (
	"context"
	"strings"

	"github.com/egorka-gh/cdek/tracker"
	//mysql driver
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Schema creates tracker tables.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS cdek_dispatch (
  dispatch_number VARCHAR(50) NOT NULL,
  order_number VARCHAR(50) NOT NULL DEFAULT '',
  status_code INT NOT NULL DEFAULT 0,
  status_date VARCHAR(30) NOT NULL DEFAULT '',
  city_name VARCHAR(100) NOT NULL DEFAULT '',
  description VARCHAR(250) NOT NULL DEFAULT '',
  done TINYINT(1) NOT NULL DEFAULT 0,
  created DATETIME NOT NULL,
  updated DATETIME NOT NULL,
  PRIMARY KEY (dispatch_number),
  KEY cdek_dispatch_pending (done, updated)
) ENGINE=InnoDB DEFAULT CHARSET=utf8`,
	`CREATE TABLE IF NOT EXISTS cdek_status_log (
  id INT NOT NULL AUTO_INCREMENT,
  dispatch_number VARCHAR(50) NOT NULL,
  status_code INT NOT NULL,
  status_date VARCHAR(30) NOT NULL DEFAULT '',
  comment VARCHAR(250) NOT NULL DEFAULT '',
  logged DATETIME NOT NULL,
  PRIMARY KEY (id),
  KEY cdek_status_log_dispatch (dispatch_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8`,
}

const (
	sqlAddDispatch = "INSERT IGNORE INTO cdek_dispatch (dispatch_number, order_number, status_code, status_date, city_name, description, done, created, updated)" +
		" VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())"
	sqlListPending = "SELECT dispatch_number, order_number, status_code, status_date, city_name, description, done FROM cdek_dispatch" +
		" WHERE done = 0 ORDER BY updated LIMIT ?"
	sqlSetStatus = "UPDATE cdek_dispatch SET status_code = ?, status_date = ?, city_name = ?, description = ?, done = ?, updated = NOW()" +
		" WHERE dispatch_number = ?"
	sqlTouch     = "UPDATE cdek_dispatch SET updated = NOW() WHERE dispatch_number = ?"
	sqlLogStatus = "INSERT INTO cdek_status_log (dispatch_number, status_code, status_date, comment, logged) VALUES (?, ?, ?, LEFT(?, 250), NOW())"
)

type basicRepository struct {
	db *sqlx.DB
}

//New creates new Repository, expects mysql connection string
func New(connection string) (tracker.Repository, error) {
	db, err := sqlx.Connect("mysql", connection)
	if err != nil {
		return nil, err
	}
	return FromDB(db), nil
}

//FromDB creates Repository over opened db
func FromDB(db *sqlx.DB) tracker.Repository {
	return &basicRepository{db: db}
}

//Init creates tables if not exists
func Init(ctx context.Context, db *sqlx.DB) error {
	for _, s := range Schema {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (b *basicRepository) Close() {
	b.db.Close()
}

func (b *basicRepository) AddDispatch(ctx context.Context, d tracker.Dispatch) error {
	_, err := b.db.ExecContext(ctx, sqlAddDispatch, d.DispatchNumber, d.OrderNumber, d.StatusCode, d.StatusDate, d.CityName, d.Description, d.Done)
	return err
}

func (b *basicRepository) ListPending(ctx context.Context, limit int) ([]tracker.Dispatch, error) {
	var res []tracker.Dispatch
	err := b.db.SelectContext(ctx, &res, sqlListPending, limit)
	return res, err
}

func (b *basicRepository) SetStatus(ctx context.Context, d tracker.Dispatch) error {
	_, err := b.db.ExecContext(ctx, sqlSetStatus, d.StatusCode, d.StatusDate, d.CityName, truncate(d.Description, 250), d.Done, d.DispatchNumber)
	return err
}

func (b *basicRepository) Touch(ctx context.Context, dispatchNumber string) error {
	_, err := b.db.ExecContext(ctx, sqlTouch, dispatchNumber)
	return err
}

func (b *basicRepository) LogStatus(ctx context.Context, dispatchNumber string, code int, date, message string) error {
	_, err := b.db.ExecContext(ctx, sqlLogStatus, dispatchNumber, code, date, message)
	return err
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}
