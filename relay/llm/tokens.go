package llm

import (
	"sync"

	"github.com/Laisky/zap"
	"github.com/pkoukk/tiktoken-go"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/common/logger"
)

// tokenEncoding approximates Gemini's tokenizer closely enough for size monitoring.
const tokenEncoding = "cl100k_base"

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
)

func getTokenEncoder() *tiktoken.Tiktoken {
	encoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			logger.Logger.Warn("token encoder unavailable, falling back to length estimate",
				zap.String("hint", "set TIKTOKEN_CACHE_DIR when running offline"),
				zap.Error(err))
			return
		}
		encoder = enc
	})
	return encoder
}

// CountTokens estimates the token count of text.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if !config.ApproximateTokenEnabled {
		if enc := getTokenEncoder(); enc != nil {
			return len(enc.Encode(text, nil, nil))
		}
	}
	return approximateTokens(text)
}

func approximateTokens(text string) int {
	n := len(text) / 4
	if n == 0 {
		return 1
	}
	return n
}
