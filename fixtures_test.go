package ssz

// Fixture container types modeled on Ethereum consensus-layer shapes
// (Fork, Checkpoint, Validator, BeaconState and friends), trimmed to
// keep list/vector bounds small enough for table-driven tests while
// still exercising the reflective field kinds: fixed containers, nested
// containers, fixed and variable vectors/lists, a BitVector-shaped fixed
// byte array, and a raw-byte bitlist field. The uint128/uint256 kinds,
// Option, Union and the collection wrappers do not appear here.

type fork struct {
	PreviousVersion [4]byte
	CurrentVersion  [4]byte
	Epoch           uint64
}

type checkpoint struct {
	Epoch uint64
	Root  [32]byte
}

type blockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    [32]byte
	StateRoot     [32]byte
	BodyRoot      [32]byte
}

type eth1Data struct {
	DepositRoot  [32]byte
	DepositCount uint64
	BlockHash    [32]byte
}

type validator struct {
	Pubkey                     [48]byte
	WithdrawalCredentials      [32]byte
	EffectiveBalance           uint64
	Slashed                    bool
	ActivationEligibilityEpoch uint64
	ActivationEpoch            uint64
	ExitEpoch                  uint64
	WithdrawableEpoch          uint64
}

type attestationData struct {
	Slot            uint64
	Index           uint64
	BeaconBlockRoot [32]byte
	Source          checkpoint
	Target          checkpoint
}

type pendingAttestation struct {
	AggregationBits []byte `ssz:"bitlist" ssz-max:"2048"`
	Data            attestationData
	InclusionDelay  uint64
	ProposerIndex   uint64
}

// beaconState is deliberately shrunk (max/size bounds of 4 rather than
// the real chain's thousands) so table-driven tests stay fast while
// still exercising every offset-table and Merkleization path a full
// state would.
type beaconState struct {
	GenesisTime                 uint64
	GenesisValidatorsRoot       [32]byte
	Slot                        uint64
	Fork                        fork
	LatestBlockHeader           blockHeader
	BlockRoots                  [4][32]byte `ssz-size:"4"`
	StateRoots                  [4][32]byte `ssz-size:"4"`
	HistoricalRoots             [][32]byte  `ssz-max:"4"`
	Eth1Data                    eth1Data
	Eth1DataVotes               []eth1Data  `ssz-max:"4"`
	Eth1DepositIndex            uint64
	Validators                  []validator `ssz-max:"4"`
	Balances                    []uint64    `ssz-max:"4"`
	RandaoMixes                 [4][32]byte `ssz-size:"4"`
	Slashings                   [4]uint64   `ssz-size:"4"`
	PreviousEpochAttestations   []pendingAttestation `ssz-max:"4"`
	CurrentEpochAttestations    []pendingAttestation `ssz-max:"4"`
	JustificationBits           [1]byte              `ssz-size:"1"`
	PreviousJustifiedCheckpoint checkpoint
	CurrentJustifiedCheckpoint  checkpoint
	FinalizedCheckpoint         checkpoint
}
