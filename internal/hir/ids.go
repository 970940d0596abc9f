package hir

type (
	// Design unit level.
	LibID     uint32
	EntityID  uint32
	ArchID    uint32
	PkgID     uint32
	PkgBodyID uint32
	PkgInstID uint32
	CtxID     uint32
	CfgID     uint32
	// Context clause region preceding a design unit.
	CtxItemsID uint32
	// Declarations and expressions.
	IntfSignalID   uint32
	SubtypeIndID   uint32
	TypeDeclID     uint32
	SubtypeDeclID  uint32
	ConstDeclID    uint32
	SignalDeclID   uint32
	VariableDeclID uint32
	FileDeclID     uint32
	ExprID         uint32
)

const (
	NoLibID          LibID          = 0
	NoEntityID       EntityID       = 0
	NoArchID         ArchID         = 0
	NoPkgID          PkgID          = 0
	NoPkgBodyID      PkgBodyID      = 0
	NoPkgInstID      PkgInstID      = 0
	NoCtxID          CtxID          = 0
	NoCfgID          CfgID          = 0
	NoCtxItemsID     CtxItemsID     = 0
	NoIntfSignalID   IntfSignalID   = 0
	NoSubtypeIndID   SubtypeIndID   = 0
	NoTypeDeclID     TypeDeclID     = 0
	NoSubtypeDeclID  SubtypeDeclID  = 0
	NoConstDeclID    ConstDeclID    = 0
	NoSignalDeclID   SignalDeclID   = 0
	NoVariableDeclID VariableDeclID = 0
	NoFileDeclID     FileDeclID     = 0
	NoExprID         ExprID         = 0
)

func (id LibID) IsValid() bool          { return id != NoLibID }
func (id EntityID) IsValid() bool       { return id != NoEntityID }
func (id ArchID) IsValid() bool         { return id != NoArchID }
func (id PkgID) IsValid() bool          { return id != NoPkgID }
func (id PkgBodyID) IsValid() bool      { return id != NoPkgBodyID }
func (id PkgInstID) IsValid() bool      { return id != NoPkgInstID }
func (id CtxID) IsValid() bool          { return id != NoCtxID }
func (id CfgID) IsValid() bool          { return id != NoCfgID }
func (id CtxItemsID) IsValid() bool     { return id != NoCtxItemsID }
func (id IntfSignalID) IsValid() bool   { return id != NoIntfSignalID }
func (id SubtypeIndID) IsValid() bool   { return id != NoSubtypeIndID }
func (id TypeDeclID) IsValid() bool     { return id != NoTypeDeclID }
func (id SubtypeDeclID) IsValid() bool  { return id != NoSubtypeDeclID }
func (id ConstDeclID) IsValid() bool    { return id != NoConstDeclID }
func (id SignalDeclID) IsValid() bool   { return id != NoSignalDeclID }
func (id VariableDeclID) IsValid() bool { return id != NoVariableDeclID }
func (id FileDeclID) IsValid() bool     { return id != NoFileDeclID }
func (id ExprID) IsValid() bool         { return id != NoExprID }
