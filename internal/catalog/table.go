package catalog

// Table is the immutable, process-wide piece registry, indexed by type id.
// Built once; never mutated after NewTable returns.
type Table struct {
	byID map[string]PieceType
	ids  []string
}

// NewTable builds the standard catalog used by every room. Cost/VP figures
// are design constants, exercised by draft/placement/promotion tests rather
// than derived from anywhere at runtime.
func NewTable() *Table {
	t := &Table{byID: make(map[string]PieceType, 32)}
	for _, pt := range builtins() {
		t.add(pt)
	}
	return t
}

func (t *Table) add(pt PieceType) {
	if _, exists := t.byID[pt.ID]; exists {
		panic("catalog: duplicate piece id " + pt.ID)
	}
	t.byID[pt.ID] = pt
	t.ids = append(t.ids, pt.ID)
}

// Get looks up a piece type by id.
func (t *Table) Get(id string) (PieceType, bool) {
	pt, ok := t.byID[id]
	return pt, ok
}

// MustGet looks up a piece type by id, panicking if absent. Intended for
// constants known to exist in the built-in table (e.g. the King).
func (t *Table) MustGet(id string) PieceType {
	pt, ok := t.byID[id]
	if !ok {
		panic("catalog: unknown piece id " + id)
	}
	return pt
}

// Has reports whether id names a known piece type.
func (t *Table) Has(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// IDs returns every registered piece type id, in registration order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// All returns every registered piece type, in registration order.
func (t *Table) All() []PieceType {
	out := make([]PieceType, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.byID[id])
	}
	return out
}

const (
	KingID       = "king"
	QueenID      = "queen"
	RookID       = "rook"
	BishopID     = "bishop"
	KnightID     = "knight"
	PawnID       = "pawn"
	CoordinatorID = "coordinator"
	BoxerID      = "boxer"
	WithdrawerID = "withdrawer"
	ThiefID      = "thief"
	LongLeaperID = "long_leaper"
	CannonID     = "cannon"
	ChameleonID  = "chameleon"
	HeraldID     = "herald"
	RegentID     = "regent"
	PhantomKingID = "phantom_king"
	ChamberlainID = "chamberlain"
	PontiffID    = "pontiff"
	NightriderID = "nightrider"
	GrasshopperID = "grasshopper"
	ShogiPawnID  = "shogi_pawn"
	BerolinaPawnID = "berolina_pawn"
	FoolID       = "fool"
	JesterID     = "jester"
)

func builtins() []PieceType {
	return []PieceType{
		{
			ID: KingID, Tier: TierRoyalty, Cost: 0, VictoryPoints: 0,
			IsRoyal: true, IsMandatory: true, CanCastle: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialKingOneSquare}},
			CaptureType: CaptureStandard,
		},
		{
			ID: QueenID, Tier: TierPiece, Cost: 90, VictoryPoints: 9,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: SlideAll},
			CaptureType: CaptureStandard,
		},
		{
			ID: RookID, Tier: TierPiece, Cost: 50, VictoryPoints: 5,
			CanCastle: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: SlideOrthogonal},
			CaptureType: CaptureStandard,
		},
		{
			ID: BishopID, Tier: TierPiece, Cost: 30, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: SlideDiagonal},
			CaptureType: CaptureStandard,
		},
		{
			ID: KnightID, Tier: TierPiece, Cost: 30, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Leaps: []Leap{{Vector: Vector{1, 2}, Symmetric: true}}},
			CaptureType: CaptureStandard,
		},
		{
			ID: PawnID, Tier: TierPawn, Cost: 10, VictoryPoints: 1,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialPawnForward, SpecialPawnCaptureDiagonal}},
			CaptureType: CaptureStandard,
		},
		{
			ID: ShogiPawnID, Tier: TierPawn, Cost: 8, VictoryPoints: 1,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialShogiPawn}},
			CaptureType: CaptureStandard,
		},
		{
			ID: BerolinaPawnID, Tier: TierPawn, Cost: 10, VictoryPoints: 1,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialPeasantDiagonal, SpecialPeasantCaptureForward}},
			CaptureType: CaptureStandard,
		},
		{
			ID: CoordinatorID, Tier: TierPiece, Cost: 70, VictoryPoints: 6,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: SlideAll},
			CaptureType: CaptureCoordinator,
		},
		{
			ID: BoxerID, Tier: TierPiece, Cost: 40, VictoryPoints: 4,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: SlideOrthogonal},
			CaptureType: CaptureBoxer,
		},
		{
			ID: WithdrawerID, Tier: TierPiece, Cost: 45, VictoryPoints: 4,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: SlideAll},
			CaptureType: CaptureWithdrawal,
		},
		{
			ID: ThiefID, Tier: TierPiece, Cost: 35, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Leaps: []Leap{{Vector: Vector{1, 2}, Symmetric: true}}},
			CaptureType: CaptureThief,
		},
		{
			ID: LongLeaperID, Tier: TierPiece, Cost: 60, VictoryPoints: 5,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: SlideAll, Specials: []SpecialTag{SpecialLongLeap}},
			CaptureType: CaptureLongLeap,
		},
		{
			ID: CannonID, Tier: TierPiece, Cost: 50, VictoryPoints: 4,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialCannonMove}},
			CaptureType: CaptureCannon,
		},
		{
			ID: ChameleonID, Tier: TierPiece, Cost: 80, VictoryPoints: 7,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialChameleon}},
			CaptureType: CaptureChameleon,
		},
		{
			ID: HeraldID, Tier: TierPiece, Cost: 25, VictoryPoints: 2,
			CanFreeze: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialHeraldOrthogonal}},
			CaptureType: CaptureNone,
		},
		{
			ID: RegentID, Tier: TierRoyalty, Cost: 95, VictoryPoints: 0,
			IsRoyal: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialRegentConditional}},
			CaptureType: CaptureStandard,
		},
		{
			ID: PhantomKingID, Tier: TierRoyalty, Cost: 85, VictoryPoints: 0,
			IsRoyal: true, ReplacesKing: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialKingOneSquare, SpecialSwapAdjacent}},
			CaptureType: CaptureStandard,
		},
		{
			ID: ChamberlainID, Tier: TierPiece, Cost: 40, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialSwapAdjacent}},
			CaptureType: CaptureNone,
		},
		{
			ID: PontiffID, Tier: TierPiece, Cost: 55, VictoryPoints: 5,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialBounce}},
			CaptureType: CaptureStandard,
		},
		{
			ID: NightriderID, Tier: TierPiece, Cost: 65, VictoryPoints: 6,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialNightrider}},
			CaptureType: CaptureStandard,
		},
		{
			ID: GrasshopperID, Tier: TierPiece, Cost: 35, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []SpecialTag{SpecialGrasshopper}},
			CaptureType: CaptureStandard,
		},
		{
			ID: FoolID, Tier: TierOther, Cost: 5, VictoryPoints: 1,
			CanBeCaptured: false, CanBeJumpedOver: false,
			Movement:    Movement{Specials: []SpecialTag{SpecialKingOneSquare}},
			CaptureType: CaptureStandard,
		},
		{
			ID: JesterID, Tier: TierOther, Cost: 15, VictoryPoints: -15,
			CanBeCaptured: false, CanBeJumpedOver: false,
			Movement:    Movement{Slides: SlideAll},
			CaptureType: CaptureStandard,
		},
	}
}
