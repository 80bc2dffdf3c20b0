package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/urfave/cli"

	"github.com/playparts/lotto-backend/internal/utils"
	"github.com/playparts/lotto-backend/pkg/commitreveal"
)

// Offline companion tool for round operators: generates committer keys,
// produces the seed commitment signature StartRound expects, and verifies a
// reveal against a committer address before it is submitted.
func main() {
	app := cli.NewApp()
	app.Name = "lotto-signer"
	app.Usage = "offline seed commitment tooling for round operators"
	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generate a new committer keypair",
			Action: keygen,
		},
		{
			Name:  "sign",
			Usage: "sign a seed commitment for a round",
			Flags: []cli.Flag{
				cli.Uint64Flag{Name: "round", Usage: "round id the commitment binds to"},
				cli.StringFlag{Name: "seed", Usage: "32-byte seed as 0x-prefixed hex"},
				cli.StringFlag{Name: "key", Usage: "committer private key as hex"},
			},
			Action: sign,
		},
		{
			Name:  "verify",
			Usage: "check a reveal against a committer address",
			Flags: []cli.Flag{
				cli.Uint64Flag{Name: "round", Usage: "round id the commitment binds to"},
				cli.StringFlag{Name: "seed", Usage: "32-byte seed as 0x-prefixed hex"},
				cli.StringFlag{Name: "signature", Usage: "commitment signature as 0x-prefixed hex"},
				cli.StringFlag{Name: "committer", Usage: "expected committer address"},
			},
			Action: verify,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func keygen(c *cli.Context) error {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return err
	}
	fmt.Printf("private: %x\n", ethcrypto.FromECDSA(key))
	fmt.Printf("address: %s\n", ethcrypto.PubkeyToAddress(key.PublicKey).Hex())
	return nil
}

func sign(c *cli.Context) error {
	seed, err := hexutil.Decode(c.String("seed"))
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}
	key, err := ethcrypto.HexToECDSA(c.String("key"))
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}
	signature, err := commitreveal.SignCommit(c.Uint64("round"), seed, key)
	if err != nil {
		return err
	}
	fmt.Printf("signature: %s\n", hexutil.Encode(signature))
	return nil
}

func verify(c *cli.Context) error {
	seed, err := hexutil.Decode(c.String("seed"))
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}
	signature, err := hexutil.Decode(c.String("signature"))
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}
	committer, err := utils.ParseAddress(c.String("committer"))
	if err != nil {
		return fmt.Errorf("invalid committer address: %w", err)
	}
	ok, err := commitreveal.VerifyReveal(committer, c.Uint64("round"), seed, signature)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("reveal does NOT match committer")
		return cli.NewExitError("verification failed", 1)
	}
	fmt.Println("reveal matches committer")
	return nil
}
