package catalog

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const listQuery = `
        SELECT id, name, name_he, name_ru, base_price, image_url
        FROM products
        ORDER BY id
    `

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.NameHe, &p.NameRu, &p.BasePrice, &p.ImageURL); err != nil {
			return out
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	var p Product
	err := r.db.QueryRow(`SELECT id, name, name_he, name_ru, base_price, image_url FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.NameHe, &p.NameRu, &p.BasePrice, &p.ImageURL)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	err := r.db.QueryRow(`UPDATE products SET name = $1, name_he = $2, name_ru = $3, base_price = $4, image_url = $5 WHERE id = $6
        RETURNING id, name, name_he, name_ru, base_price, image_url`,
		p.Name, p.NameHe, p.NameRu, p.BasePrice, p.ImageURL, id).
		Scan(&p.ID, &p.Name, &p.NameHe, &p.NameRu, &p.BasePrice, &p.ImageURL)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}
