package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	MaxFileSize       int64
	ClassifyMinScore  int
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	var maxFileSize int64 = 10 * 1024 * 1024 // 10 MB
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxFileSize = n
		}
	}

	// Minimum keyword evidence before a document is classified; the default
	// is empirical and deliberately overridable.
	classifyMinScore := 8
	if v := os.Getenv("CLASSIFY_MIN_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			classifyMinScore = n
		}
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		MaxFileSize:       maxFileSize,
		ClassifyMinScore:  classifyMinScore,
	}
}
