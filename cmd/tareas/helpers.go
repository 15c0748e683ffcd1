package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tareas/internal/config"
	"github.com/Veraticus/tareas/internal/connectivity"
	"github.com/Veraticus/tareas/internal/intake"
	"github.com/Veraticus/tareas/internal/llm"
	"github.com/Veraticus/tareas/internal/parser"
	"github.com/Veraticus/tareas/internal/service"
	"github.com/Veraticus/tareas/internal/storage"
)

// initStorage opens the configured database and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initParser builds the parser with the configured lexicon.
func initParser() (*parser.Parser, error) {
	lex, err := config.LoadLexicon()
	if err != nil {
		return nil, err
	}
	return parser.New(parser.WithLexicon(lex))
}

// app bundles what the intake commands share.
type app struct {
	store      service.Storage
	parser     *parser.Parser
	classifier *llm.Classifier
	checker    *connectivity.Checker
	llmConfig  llm.Config
}

func openApp(ctx context.Context) (*app, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	p, err := initParser()
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	connCfg, err := config.LoadConnectivityConfig()
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := &app{
		store:     store,
		parser:    p,
		checker:   connectivity.New(connCfg, slog.Default()),
		llmConfig: config.LoadLLMConfig(),
	}

	if config.Credential(a.llmConfig) != "" {
		classifier, err := llm.NewClassifier(a.llmConfig, slog.Default())
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		a.classifier = classifier
	} else {
		slog.Debug("no classification credential, tasks go to the first folder",
			"provider", a.llmConfig.Provider)
	}

	return a, nil
}

// intakeClassifier returns the classifier as an interface value that is nil
// when no credential is configured.
func (a *app) intakeClassifier() intake.Classifier {
	if a.classifier == nil {
		return nil
	}
	return a.classifier
}

// settings reads the credential and probes connectivity now.
func (a *app) settings(ctx context.Context) intake.Settings {
	return intake.Settings{
		APIKey: config.Credential(a.llmConfig),
		Online: a.checker.Online(ctx),
	}
}

func (a *app) intake() *intake.Service {
	return intake.New(a.store, a.intakeClassifier(), a.parser, slog.Default())
}

func (a *app) drainer(opts ...intake.DrainOption) *intake.Drainer {
	return intake.NewDrainer(a.store, a.intakeClassifier(), slog.Default(), opts...)
}

func (a *app) Close() {
	if a.classifier != nil {
		_ = a.classifier.Close()
	}
	_ = a.store.Close()
}
