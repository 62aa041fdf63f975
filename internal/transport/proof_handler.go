// Package transport exposes the proof assembly API over HTTP.
package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/assembler"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string         `json:"error"`
	Kind  assembler.Kind `json:"kind,omitempty"`
}

// PubScriptResponse is the output script that pays an address.
type PubScriptResponse struct {
	Address    string        `json:"address"`
	Network    model.Network `json:"network"`
	PubScript  string        `json:"pubscript"`
	ScriptType string        `json:"script_type"`
}

// ProofHandler serves verification packets for one network.
type ProofHandler struct {
	assembler Assembler
	network   model.Network
	logger    *zap.Logger
}

// NewProofHandler returns a ProofHandler instance.
func NewProofHandler(a Assembler, network model.Network, logger *zap.Logger) *ProofHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProofHandler{
		assembler: a,
		network:   network,
		logger:    logger.Named("proof_handler"),
	}
}

// Register mounts the handler's routes.
func (h *ProofHandler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	v1 := r.Group("/v1")
	v1.GET("/proofs/:txid", h.GetProof)
	v1.GET("/addresses/:address/pubscript", h.GetPubScript)
}

// Health reports server health.
// GET /health
func (h *ProofHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "network": h.network})
}

// GetProof assembles the verification packet of a transaction.
// GET /v1/proofs/:txid[?second_chain_height=N]
func (h *ProofHandler) GetProof(c *gin.Context) {
	req := assembler.Request{TxID: c.Param("txid")}

	if raw, ok := c.GetQuery("second_chain_height"); ok {
		height, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || height == 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid second_chain_height", Kind: assembler.KindInvalidRequest})
			return
		}
		req.SecondChainHeight = height
	}

	packet, err := h.assembler.Assemble(c.Request.Context(), req)
	if err != nil {
		kind := assembler.KindOf(err)
		status := StatusForKind(kind)
		if status >= http.StatusInternalServerError {
			h.logger.Error("proof assembly failed", zap.String("txid", req.TxID), zap.String("kind", string(kind)), zap.Error(err))
		} else {
			h.logger.Info("proof rejected", zap.String("txid", req.TxID), zap.String("kind", string(kind)), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: errorMessage(err), Kind: kind})
		return
	}

	c.JSON(http.StatusOK, NewPacketResponse(packet, h.network))
}

// GetPubScript converts an address into the output script that pays it.
// GET /v1/addresses/:address/pubscript
func (h *ProofHandler) GetPubScript(c *gin.Context) {
	address := c.Param("address")

	script, err := bitcoin.PubScriptFromAddress(address, h.network)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: assembler.KindInvalidRequest})
		return
	}

	c.JSON(http.StatusOK, PubScriptResponse{
		Address:    address,
		Network:    h.network,
		PubScript:  hexcodec.Encode(script),
		ScriptType: bitcoin.ScriptClass(script),
	})
}

// StatusForKind maps an assembly failure kind to an HTTP status.
func StatusForKind(kind assembler.Kind) int {
	switch kind {
	case assembler.KindInvalidRequest:
		return http.StatusBadRequest
	case assembler.KindBlockNotIndexed:
		return http.StatusNotFound
	case assembler.KindTargetNotInBlock:
		return http.StatusConflict
	case assembler.KindEncodingMismatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// errorMessage hides upstream detail behind the kind for source failures.
func errorMessage(err error) string {
	var assembleErr *assembler.Error
	if errors.As(err, &assembleErr) && assembleErr.Kind != assembler.KindSourceUnavailable {
		return assembleErr.Err.Error()
	}
	return "upstream data source unavailable"
}
