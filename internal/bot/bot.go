package bot

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// BotMoveCalculator implements the room.MoveCalculator interface. It wraps
// CalculateNextMove with a span and a latency histogram.
type BotMoveCalculator struct {
	duration metric.Float64Histogram
}

// NewBotMoveCalculator creates a calculator reporting to the global meter provider.
func NewBotMoveCalculator() *BotMoveCalculator {
	duration, err := meter.Float64Histogram(
		"bot.move.duration",
		metric.WithDescription("Time spent choosing a computer move"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		slog.Warn("failed to create bot.move.duration histogram", "error", err)
	}
	return &BotMoveCalculator{duration: duration}
}

// CalculateNextMove calls the package-level function to satisfy the interface.
func (c *BotMoveCalculator) CalculateNextMove(ctx context.Context, board game.Board, botMark game.PlayerMark, difficulty game.Difficulty) int {
	ctx, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.String("bot.mark", string(botMark)),
		attribute.String("bot.difficulty", string(difficulty)),
	))
	defer span.End()

	start := time.Now()
	index := CalculateNextMove(board, botMark, difficulty)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("move.index", index))
	if c.duration != nil {
		c.duration.Record(ctx, float64(elapsed.Microseconds())/1000,
			metric.WithAttributes(attribute.String("bot.difficulty", string(difficulty))))
	}
	slog.DebugContext(ctx, "bot chose move", "bot.mark", botMark, "bot.difficulty", difficulty, "move.index", index, "elapsed", elapsed)

	return index
}
