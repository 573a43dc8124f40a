package postgres

import (
	"context"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

func (r *customerRepository) Create(ctx context.Context, c model.Customer) error {
	const query = `INSERT INTO customers (id, name, email, image_url) VALUES ($1, $2, $3, $4)`
	_, err := r.storage.pool.Exec(ctx, query, c.ID, c.Name, c.Email, c.ImageURL)
	return err
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	const query = `SELECT id, name, email, image_url FROM customers ORDER BY name ASC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
