// Command proptest is a randomized equivalence harness for package bitvec:
// it generates random bit patterns at a range of densities, builds every
// representation over them, and checks that they agree with a baseline
// oracle and each other.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/xflash-panda/succinct/internal/proptest"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML run configuration (optional)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("proptest: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("proptest: %v", err)
	}
}

func run(cfg config) error {
	var passed, failed int64

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Concurrency)

	rootRng := rand.New(rand.NewSource(cfg.Seed))
	for trial := 0; trial < cfg.Trials; trial++ {
		density := cfg.Densities[trial%len(cfg.Densities)]
		trialSeed := rootRng.Int63()

		g.Go(func() error {
			rng := rand.New(rand.NewSource(trialSeed))
			ones := proptest.GenerateOnes(rng, cfg.UniverseSize, density)

			if err := proptest.CheckBitVecEquivalence(cfg.UniverseSize, ones); err != nil {
				atomic.AddInt64(&failed, 1)
				log.Printf("FAIL bitvec density=%.3f seed=%d: %v", density, trialSeed, err)
				return nil
			}

			multiplicities := proptest.GenerateMultiplicities(rng, ones, cfg.MaxMultiplicity)
			if err := proptest.CheckMultiBitVecEquivalence(cfg.UniverseSize, ones, multiplicities); err != nil {
				atomic.AddInt64(&failed, 1)
				log.Printf("FAIL multi density=%.3f seed=%d: %v", density, trialSeed, err)
				return nil
			}

			atomic.AddInt64(&passed, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("proptest: %d/%d trials passed", passed, passed+failed)
	return nil
}
