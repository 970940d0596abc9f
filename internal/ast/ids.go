package ast

type (
	// top-level entities
	UnitID    uint32
	CtxItemID uint32
	// sub-entities
	DeclID       uint32
	PortID       uint32
	ExprID       uint32
	ConstraintID uint32
)

const (
	NoUnitID       UnitID       = 0
	NoCtxItemID    CtxItemID    = 0
	NoDeclID       DeclID       = 0
	NoPortID       PortID       = 0
	NoExprID       ExprID       = 0
	NoConstraintID ConstraintID = 0
)

func (id UnitID) IsValid() bool       { return id != NoUnitID }
func (id CtxItemID) IsValid() bool    { return id != NoCtxItemID }
func (id DeclID) IsValid() bool       { return id != NoDeclID }
func (id PortID) IsValid() bool       { return id != NoPortID }
func (id ExprID) IsValid() bool       { return id != NoExprID }
func (id ConstraintID) IsValid() bool { return id != NoConstraintID }
