// Package metrics exposes Prometheus collectors for the flag game.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// Recorder implements service.MetricsRecorder on top of Prometheus collectors.
type Recorder struct {
	gamesStarted  prometheus.Counter
	gamesFinished prometheus.Counter
	answers       *prometheus.CounterVec
	finalScore    prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flaggame_games_started_total",
			Help: "Total games started or restarted",
		}),
		gamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flaggame_games_finished_total",
			Help: "Total games played to the last round",
		}),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flaggame_answers_total",
				Help: "Total answered rounds by outcome",
			},
			[]string{"outcome"},
		),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "flaggame_final_score",
			Help:    "Score at game over",
			Buckets: prometheus.LinearBuckets(0, 1, entities.MaxRounds+1),
		}),
	}

	reg.MustRegister(r.gamesStarted, r.gamesFinished, r.answers, r.finalScore)
	return r
}

func (r *Recorder) GameStarted() {
	r.gamesStarted.Inc()
}

func (r *Recorder) Answered(outcome entities.Outcome) {
	r.answers.WithLabelValues(string(outcome.Kind)).Inc()
}

func (r *Recorder) GameFinished(score int) {
	r.gamesFinished.Inc()
	r.finalScore.Observe(float64(score))
}
