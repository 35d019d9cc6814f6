// Package seed bootstraps the reference data the office depends on: the
// service categories, the service type templates with their document
// checklists, and the initial super admin account. Seeding is idempotent
// and only inserts what is missing.
package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/simanis/notary-system/internal/core/domain"
)

type Seeder struct {
	db  *mongo.Database
	log zerolog.Logger
}

func New(db *mongo.Database, log zerolog.Logger) *Seeder {
	return &Seeder{db: db, log: log}
}

// Run seeds categories, service types and (when credentials are
// configured) the first super admin.
func (s *Seeder) Run(ctx context.Context, adminUsername, adminPassword string) error {
	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	if err := s.seedServiceTypes(ctx); err != nil {
		return err
	}
	if adminPassword != "" {
		if err := s.seedAdmin(ctx, adminUsername, adminPassword); err != nil {
			return err
		}
	}
	return nil
}

var categories = []domain.ServiceCategory{
	{ID: "cat-notaris", Name: "Layanan Notaris", Type: domain.CategoryNotaris, IsActive: true},
	{ID: "cat-ppat", Name: "Layanan PPAT", Type: domain.CategoryPPAT, IsActive: true},
	{ID: "cat-syariah", Name: "Layanan Syariah", Type: domain.CategorySyariah, IsActive: true},
}

var serviceTypes = []domain.ServiceType{
	{
		ID:       "st-pendirian-pt",
		Name:     "Akta Pendirian PT",
		Category: domain.CategoryNotaris,
		DocumentTemplate: domain.DocumentTemplate{
			"identitas": {"KTP Pendiri", "NPWP Pendiri", "KK Pendiri"},
			"perusahaan": {
				"Nama PT (3 alternatif)",
				"Susunan Pemegang Saham",
				"Modal Dasar dan Disetor",
			},
		},
		WorkflowSteps: []string{"Pengecekan Nama", "Penyusunan Akta", "Tanda Tangan", "SK Kemenkumham"},
		IsActive:      true,
	},
	{
		ID:       "st-jual-beli",
		Name:     "Akta Jual Beli",
		Category: domain.CategoryPPAT,
		DocumentTemplate: domain.DocumentTemplate{
			"penjual": {"KTP Penjual", "KK Penjual", "NPWP Penjual", "Sertifikat Tanah"},
			"pembeli": {"KTP Pembeli", "KK Pembeli", "NPWP Pembeli"},
			"dokumen": {"PBB Tahun Berjalan", "Bukti Bayar BPHTB"},
		},
		WorkflowSteps: []string{"Pengecekan Sertifikat", "Perhitungan Pajak", "Penandatanganan AJB", "Balik Nama"},
		IsActive:      true,
	},
	{
		ID:       "st-surat-kuasa",
		Name:     "Surat Kuasa",
		Category: domain.CategoryNotaris,
		DocumentTemplate: domain.DocumentTemplate{
			"pihak": {"KTP Pemberi Kuasa", "KTP Penerima Kuasa"},
		},
		WorkflowSteps: []string{"Penyusunan", "Tanda Tangan"},
		IsActive:      true,
	},
	{
		ID:       "st-akad-syariah",
		Name:     "Akad Pembiayaan Syariah",
		Category: domain.CategorySyariah,
		DocumentTemplate: domain.DocumentTemplate{
			"nasabah": {"KTP Nasabah", "KK Nasabah", "Slip Gaji"},
			"jaminan": {"Sertifikat Jaminan", "PBB Jaminan"},
		},
		WorkflowSteps: []string{"Verifikasi Dokumen", "Penyusunan Akad", "Penandatanganan"},
		IsActive:      true,
	},
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	col := s.db.Collection("service_categories")
	for _, cat := range categories {
		n, err := col.CountDocuments(ctx, bson.M{"_id": cat.ID})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		cat.CreatedAt = time.Now().UTC()
		if _, err := col.InsertOne(ctx, cat); err != nil {
			return err
		}
		s.log.Info().Str("category", cat.ID).Msg("seeded service category")
	}
	return nil
}

func (s *Seeder) seedServiceTypes(ctx context.Context) error {
	col := s.db.Collection("service_types")
	for _, st := range serviceTypes {
		n, err := col.CountDocuments(ctx, bson.M{"_id": st.ID})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		now := time.Now().UTC()
		st.CreatedAt = now
		st.UpdatedAt = now
		if _, err := col.InsertOne(ctx, st); err != nil {
			return err
		}
		s.log.Info().Str("service_type", st.ID).Msg("seeded service type")
	}
	return nil
}

// seedAdmin creates the initial super admin unless the username exists.
func (s *Seeder) seedAdmin(ctx context.Context, username, password string) error {
	col := s.db.Collection("users")
	n, err := col.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = col.InsertOne(ctx, bson.M{
		"_id":           "user-superadmin",
		"username":      username,
		"password_hash": string(hash),
		"full_name":     "Super Admin",
		"role":          string(domain.RoleSuperAdmin),
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("seeded super admin account")
	return nil
}
