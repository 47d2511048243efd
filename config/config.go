package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	TesseractLanguage string
	PaddleAPIURL      string
	GeminiAPIKey      string
	GeminiModel       string
	MaxFileSize       int64

	// Extraction thresholds. Two revisions of the extraction rules
	// disagreed on these (18 vs 15 digits, 1e8 vs 1e7); the permissive pair
	// is the default.
	MaxNumericDocNoLength int
	AmountCeiling         float64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata"
	}

	tesseractLanguage := os.Getenv("TESSERACT_LANG")
	if tesseractLanguage == "" {
		tesseractLanguage = "tur"
	}

	paddleAPIURL := os.Getenv("PADDLEOCR_API_URL")
	if paddleAPIURL == "" {
		paddleAPIURL = "http://paddleocr:8866/predict/ocr_system"
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-1.5-flash-latest"
	}

	maxNumericDocNoLength := 0
	if v := os.Getenv("DOC_NO_MAX_NUMERIC_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxNumericDocNoLength = n
		}
	}

	amountCeiling := 0.0
	if v := os.Getenv("AMOUNT_CEILING"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			amountCeiling = f
		}
	}

	return &Config{
		ServerPort:            serverPort,
		TesseractDataPath:     tesseractDataPath,
		TesseractLanguage:     tesseractLanguage,
		PaddleAPIURL:          paddleAPIURL,
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           geminiModel,
		MaxFileSize:           10 * 1024 * 1024, // 10 MB
		MaxNumericDocNoLength: maxNumericDocNoLength,
		AmountCeiling:         amountCeiling,
	}
}
