// Package op defines opcodes used by the ndcalc compiler and the
// evaluation engines that execute its bytecode.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Stack
	PushConst Code = 1
	LoadVar   Code = 2

	// Arithmetic
	Add Code = 10
	Sub Code = 11
	Mul Code = 12
	Div Code = 13
	Neg Code = 14
	Pow Code = 15

	// Mathematical functions
	Sin  Code = 20
	Cos  Code = 21
	Tan  Code = 22
	Exp  Code = 23
	Log  Code = 24
	Sqrt Code = 25
	Abs  Code = 26

	// Control
	Return Code = 30
)

// OperandKind describes the payload carried by an instruction. Each
// opcode carries exactly one kind of operand, or none.
type OperandKind int

const (
	// OperandNone indicates the opcode carries no operand.
	OperandNone OperandKind = iota
	// OperandConst indicates the operand is a floating point constant.
	OperandConst
	// OperandVar indicates the operand is an input variable index.
	OperandVar
)

// Info contains information about an opcode.
type Info struct {
	Code    Code
	Name    string
	Operand OperandKind
	// StackPop is the number of values the opcode pops from the
	// evaluation stack. Return is special-cased by the engines and
	// listed as popping one value (the result).
	StackPop int
	// StackPush is the number of values the opcode pushes.
	StackPush int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op      Code
		name    string
		operand OperandKind
		pop     int
		push    int
	}
	ops := []opInfo{
		{PushConst, "PUSH_CONST", OperandConst, 0, 1},
		{LoadVar, "LOAD_VAR", OperandVar, 0, 1},
		{Add, "ADD", OperandNone, 2, 1},
		{Sub, "SUB", OperandNone, 2, 1},
		{Mul, "MUL", OperandNone, 2, 1},
		{Div, "DIV", OperandNone, 2, 1},
		{Neg, "NEG", OperandNone, 1, 1},
		{Pow, "POW", OperandNone, 2, 1},
		{Sin, "SIN", OperandNone, 1, 1},
		{Cos, "COS", OperandNone, 1, 1},
		{Tan, "TAN", OperandNone, 1, 1},
		{Exp, "EXP", OperandNone, 1, 1},
		{Log, "LOG", OperandNone, 1, 1},
		{Sqrt, "SQRT", OperandNone, 1, 1},
		{Abs, "ABS", OperandNone, 1, 1},
		{Return, "RETURN", OperandNone, 1, 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:      o.op,
			Name:      o.name,
			Operand:   o.operand,
			StackPop:  o.pop,
			StackPush: o.push,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

// IsValid reports whether the opcode is a known instruction.
func IsValid(op Code) bool {
	return infos[op].Name != ""
}

// String returns the mnemonic for the opcode, e.g. "PUSH_CONST".
func (op Code) String() string {
	if name := infos[op].Name; name != "" {
		return name
	}
	return "INVALID"
}
