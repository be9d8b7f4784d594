package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Extractions counts document text extractions by result source
	// (pdf, ocr, fallback).
	Extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "futureproof",
		Name:      "extractions_total",
		Help:      "Resume text extractions by source tier.",
	}, []string{"source"})

	// LLMCalls counts chat completion calls by operation and outcome
	// (ok, error, parse_error).
	LLMCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "futureproof",
		Name:      "llm_calls_total",
		Help:      "LLM completion calls by operation and outcome.",
	}, []string{"op", "outcome"})

	// SearchLookups counts web search lookups by outcome (ok, error, cache_hit).
	SearchLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "futureproof",
		Name:      "search_lookups_total",
		Help:      "Web search lookups by outcome.",
	}, []string{"outcome"})
)
