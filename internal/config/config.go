package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	DataDir   string
	OutputDir string

	CatalogFile   string
	StandardsFile string
	SynonymsFile  string
	GradesFile    string
	GrossFile     string

	GradeMatchThreshold  int
	FinishMatchThreshold int
	TypeMatchThreshold   int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}
	dataDir := getEnv("DATA_DIR", filepath.Join(cwd, "data"))

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(dataDir, "app.db")),
		DataDir:   dataDir,
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		CatalogFile:   getEnv("CATALOG_FILE", filepath.Join(dataDir, "catalog.json")),
		StandardsFile: getEnv("STANDARDS_FILE", filepath.Join(dataDir, "standards.json")),
		SynonymsFile:  getEnv("SYNONYMS_FILE", filepath.Join(dataDir, "synonyms.json")),
		GradesFile:    getEnv("GRADES_FILE", filepath.Join(dataDir, "grades.json")),
		GrossFile:     getEnv("GROSS_WEIGHT_FILE", filepath.Join(dataDir, "gross_weights.json")),

		GradeMatchThreshold:  getEnvInt("GRADE_MATCH_THRESHOLD", 85),
		FinishMatchThreshold: getEnvInt("FINISH_MATCH_THRESHOLD", 85),
		TypeMatchThreshold:   getEnvInt("TYPE_MATCH_THRESHOLD", 70),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
