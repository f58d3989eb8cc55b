package main

import (
	"fmt"
	"github.com/sirupsen/logrus"
	env "numtheory-pkg/config"
	"numtheory-pkg/prime"
	"numtheory-pkg/spf"
	"os"
	"strconv"
)

// Config factorコマンドの設定
type Config struct {
	Factor FactorConfig `mapstructure:"factor"`
}

// FactorConfig 篩で分解する上限。超える値はロー法に切り替える
type FactorConfig struct {
	SpfMaxLimit int `mapstructure:"spfmaxlimit"`
}

// 引数の整数を素因数分解する薄いラッパー
func main() {
	var cfg Config
	env.Read(&cfg)

	if len(os.Args) < 2 {
		logrus.Fatal("usage: factor <number>...")
	}

	sieve, err := spf.New(cfg.Factor.SpfMaxLimit)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build spf sieve")
	}

	for _, arg := range os.Args[1:] {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{"arg": arg}).Error("not an unsigned 64bit integer")
			continue
		}

		var factors []uint64
		if n >= 2 && n <= uint64(cfg.Factor.SpfMaxLimit) {
			factors, err = sieve.Factorize(n)
		} else {
			factors, err = prime.Factor(n)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"n": n, "err": err}).Error("factorization failed")
			continue
		}

		fmt.Printf("%d = %v\n", n, factors)
	}
}
