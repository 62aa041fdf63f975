package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/assembler"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Assembler builds verification packets.
	Assembler interface {
		Assemble(ctx context.Context, req assembler.Request) (*model.VerificationPacket, error)
	}
)
