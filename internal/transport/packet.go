package transport

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
)

// PacketResponse is the JSON form of a verification packet. Every byte field is hex in the
// exact width the verifier takes: integers as little-endian fixed-width buffers, hashes in
// internal byte order.
type PacketResponse struct {
	TxID                 string         `json:"txid"`
	ReversedTxID         string         `json:"reversed_txid"`
	Transaction          string         `json:"transaction"`
	Parts                PartsResponse  `json:"parts"`
	Proof                ProofResponse  `json:"proof"`
	Header               HeaderResponse `json:"header"`
	BlockHash            string         `json:"block_hash"`
	BlockHeight          uint64         `json:"block_height"`
	SecondChainHeight    uint64         `json:"second_chain_height"`
	SecondChainBlockHash string         `json:"second_chain_block_hash"`
}

// PartsResponse is the canonical transaction split into the fields the verifier hashes.
type PartsResponse struct {
	Version      string           `json:"version"`
	VersionWidth string           `json:"version_width"`
	Inputs       []InputResponse  `json:"ins"`
	Outputs      []OutputResponse `json:"outs"`
	LockTime     string           `json:"locktime"`
}

// InputResponse is one input with its outpoint in internal byte order.
type InputResponse struct {
	OutpointHash  string `json:"outpoint_hash"`
	OutpointIndex string `json:"outpoint_index"`
	ScriptSig     string `json:"script_sig"`
	Sequence      string `json:"sequence"`
}

// OutputResponse is one output; Addresses is informational and not part of the proof.
type OutputResponse struct {
	Value        string   `json:"value"`
	ScriptPubKey string   `json:"script_pub_key"`
	ScriptType   string   `json:"script_type,omitempty"`
	Addresses    []string `json:"addresses"`
}

// ProofResponse is the Merkle audit path, siblings leaf level first.
type ProofResponse struct {
	TxIndex   uint32   `json:"tx_index"`
	Hashes    []string `json:"hashes"`
	TreeDepth uint32   `json:"tree_depth"`
}

// HeaderResponse is the raw 80-byte header and its six fields.
type HeaderResponse struct {
	Raw        string `json:"raw"`
	Version    string `json:"version"`
	Parent     string `json:"parent"`
	MerkleRoot string `json:"merkle_root"`
	Timestamp  string `json:"timestamp"`
	Bits       string `json:"nbits"`
	Nonce      string `json:"nonce"`
}

// NewPacketResponse renders packet. Outputs are annotated with the addresses they pay on
// network; scripts without a standard address decode to an empty list.
func NewPacketResponse(packet *model.VerificationPacket, network model.Network) PacketResponse {
	parts := packet.Parts

	inputs := make([]InputResponse, 0, len(parts.Inputs))
	for _, in := range parts.Inputs {
		index := hexcodec.Uint32LE(in.PrevIndex)
		sequence := hexcodec.Uint32LE(in.Sequence)
		inputs = append(inputs, InputResponse{
			OutpointHash:  hexcodec.Encode(in.PrevTxID[:]),
			OutpointIndex: hexcodec.Encode(index[:]),
			ScriptSig:     hexcodec.Encode(in.ScriptSig),
			Sequence:      hexcodec.Encode(sequence[:]),
		})
	}

	outputs := make([]OutputResponse, 0, len(parts.Outputs))
	for _, out := range parts.Outputs {
		value := hexcodec.Uint64LE(out.Value)
		addrs, err := bitcoin.AddressesFromPubScript(out.PkScript, network)
		if err != nil || addrs == nil {
			addrs = []string{}
		}
		outputs = append(outputs, OutputResponse{
			Value:        hexcodec.Encode(value[:]),
			ScriptPubKey: hexcodec.Encode(out.PkScript),
			ScriptType:   out.ScriptType,
			Addresses:    addrs,
		})
	}

	hashes := make([]string, 0, len(packet.Proof.Hashes))
	for _, h := range packet.Proof.Hashes {
		hashes = append(hashes, hexcodec.Encode(h[:]))
	}

	version := hexcodec.Uint32LE(parts.Version)
	lockTime := hexcodec.Uint32LE(parts.LockTime)
	hdr := packet.Header

	return PacketResponse{
		TxID:         packet.TxID.String(),
		ReversedTxID: internalHex(packet.TxID),
		Transaction:  hexcodec.Encode(packet.Transaction),
		Parts: PartsResponse{
			Version:      hexcodec.Encode(version[:]),
			VersionWidth: parts.VersionWidth.String(),
			Inputs:       inputs,
			Outputs:      outputs,
			LockTime:     hexcodec.Encode(lockTime[:]),
		},
		Proof: ProofResponse{
			TxIndex:   packet.Proof.TxIndex,
			Hashes:    hashes,
			TreeDepth: packet.Proof.TreeDepth,
		},
		Header: HeaderResponse{
			Raw:        hexcodec.Encode(hdr.Raw[:]),
			Version:    hexcodec.Encode(hdr.Version[:]),
			Parent:     hexcodec.Encode(hdr.Parent[:]),
			MerkleRoot: hexcodec.Encode(hdr.MerkleRoot[:]),
			Timestamp:  hexcodec.Encode(hdr.Timestamp[:]),
			Bits:       hexcodec.Encode(hdr.Bits[:]),
			Nonce:      hexcodec.Encode(hdr.Nonce[:]),
		},
		BlockHash:            packet.BlockHash,
		BlockHeight:          packet.BlockHeight,
		SecondChainHeight:    packet.SecondChainHeight,
		SecondChainBlockHash: packet.SecondChainBlockHash,
	}
}

func internalHex(h chainhash.Hash) string {
	return hexcodec.Encode(h[:])
}
