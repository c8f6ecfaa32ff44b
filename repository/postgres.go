package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shorturl/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPGRepo(port int, host, dbuser, dbname, password, baseChars string) (Repository, error) {
	args := fmt.Sprintf("host=%s port=%v user=%s dbname=%s password=%s",
		host, port, dbuser, dbname, password)
	db, err := gorm.Open(postgres.Open(args), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Url{}, &models.BaseInfo{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	repo := &postgresRepository{db: db}
	if err := repo.seedBaseChars(baseChars); err != nil {
		return nil, fmt.Errorf("seed base chars: %w", err)
	}
	return repo, nil
}

// NewPGRepoWith is just for testing purposes (no migration and no seeding)
func NewPGRepoWith(dial gorm.Dialector, cfg gorm.Config) (Repository, error) {
	db, err := gorm.Open(dial, &cfg)
	if err != nil {
		return nil, err
	}
	return &postgresRepository{db: db}, nil
}

type postgresRepository struct {
	db *gorm.DB
}

// seedBaseChars stores baseChars unless an alphabet is already stored.
// An alphabet that is in use must never change, since every existing short id
// would then point to another row.
func (p *postgresRepository) seedBaseChars(baseChars string) error {
	var count int64
	if err := p.db.Model(&models.BaseInfo{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return p.db.Create(&models.BaseInfo{BaseChars: baseChars}).Error
}

func (p *postgresRepository) BaseChars(ctx context.Context) (string, error) {
	var info models.BaseInfo
	if err := p.db.WithContext(ctx).Take(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRecordNotFound
		}
		return "", err
	}
	return info.BaseChars, nil
}

func (p *postgresRepository) Add(ctx context.Context, longURL string) (int64, error) {
	entry := models.Url{LongURL: longURL}
	if err := p.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return 0, err
	}
	return entry.ID, nil
}

func (p *postgresRepository) Get(ctx context.Context, id int64) (*models.Url, error) {
	var result models.Url
	if err := p.db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (p *postgresRepository) Increment(ctx context.Context, id int64, n int64, at time.Time) error {
	res := p.db.
		WithContext(ctx).
		Model(&models.Url{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"access_counter": gorm.Expr("access_counter + ?", n),
			"last_accessed":  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrRecordNotFound
	}
	return nil
}
