package xlwt

import "strings"

// FuncSig describes one entry of the built-in function table: the BIFF
// argument count limits, the default operand class of the function's
// result, and the expected class of each declared parameter.
type FuncSig struct {
	Name     string
	MinArgs  int
	MaxArgs  int
	Volatile bool
	Default  OperandClass
	Params   []OperandClass
}

// ParamClass returns the expected class of the i-th argument position.
// Same policy as Ptg.ParamClass: the last declared class repeats for
// variadic tails, and a zero-parameter signature answers with the default
// class.
func (s FuncSig) ParamClass(i int) OperandClass {
	if len(s.Params) == 0 {
		return s.Default
	}
	if i >= len(s.Params) {
		return s.Params[len(s.Params)-1]
	}
	return s.Params[i]
}

func classOf(c byte) OperandClass {
	switch c {
	case 'R':
		return CLASS_REF
	case 'V':
		return CLASS_VALUE
	case 'A':
		return CLASS_ARRAY
	}
	panic("bad class letter in function table: " + string(c))
}

func classesOf(s string) []OperandClass {
	out := make([]OperandClass, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = classOf(s[i])
	}
	return out
}

func sig(name string, minArgs, maxArgs int, volatile bool, ret, args string) FuncSig {
	return FuncSig{
		Name:     name,
		MinArgs:  minArgs,
		MaxArgs:  maxArgs,
		Volatile: volatile,
		Default:  classOf(ret[0]),
		Params:   classesOf(args),
	}
}

// funcDefs: BIFF function index -> signature. Return and argument classes
// follow the classic BIFF8 function table; the argument string lists the
// declared parameter classes in order. Some functions appear under more
// than one index (macro-sheet aliases); name lookup resolves to the lowest.
var funcDefs = map[uint16]FuncSig{
	0:   sig("COUNT", 0, 30, false, "V", "R"),
	1:   sig("IF", 2, 3, false, "V", "VRR"),
	2:   sig("ISNA", 1, 1, false, "V", "V"),
	3:   sig("ISERROR", 1, 1, false, "V", "V"),
	4:   sig("SUM", 0, 30, false, "V", "R"),
	5:   sig("AVERAGE", 1, 30, false, "V", "R"),
	6:   sig("MIN", 1, 30, false, "V", "R"),
	7:   sig("MAX", 1, 30, false, "V", "R"),
	8:   sig("ROW", 0, 1, false, "V", "R"),
	9:   sig("COLUMN", 0, 1, false, "V", "R"),
	10:  sig("NA", 0, 0, false, "V", ""),
	11:  sig("NPV", 2, 30, false, "V", "VR"),
	12:  sig("STDEV", 1, 30, false, "V", "R"),
	13:  sig("DOLLAR", 1, 2, false, "V", "V"),
	14:  sig("FIXED", 2, 3, false, "V", "VVV"),
	15:  sig("SIN", 1, 1, false, "V", "V"),
	16:  sig("COS", 1, 1, false, "V", "V"),
	17:  sig("TAN", 1, 1, false, "V", "V"),
	18:  sig("ATAN", 1, 1, false, "V", "V"),
	19:  sig("PI", 0, 0, false, "V", ""),
	20:  sig("SQRT", 1, 1, false, "V", "V"),
	21:  sig("EXP", 1, 1, false, "V", "V"),
	22:  sig("LN", 1, 1, false, "V", "V"),
	23:  sig("LOG10", 1, 1, false, "V", "V"),
	24:  sig("ABS", 1, 1, false, "V", "V"),
	25:  sig("INT", 1, 1, false, "V", "V"),
	26:  sig("SIGN", 1, 1, false, "V", "V"),
	27:  sig("ROUND", 2, 2, false, "V", "VV"),
	28:  sig("LOOKUP", 2, 3, false, "V", "VRR"),
	29:  sig("INDEX", 2, 4, false, "V", "RVVV"),
	30:  sig("REPT", 2, 2, false, "V", "VV"),
	31:  sig("MID", 3, 3, false, "V", "VVV"),
	32:  sig("LEN", 1, 1, false, "V", "V"),
	33:  sig("VALUE", 1, 1, false, "V", "V"),
	34:  sig("TRUE", 0, 0, false, "V", ""),
	35:  sig("FALSE", 0, 0, false, "V", ""),
	36:  sig("AND", 1, 30, false, "V", "R"),
	37:  sig("OR", 1, 30, false, "V", "R"),
	38:  sig("NOT", 1, 1, false, "V", "V"),
	39:  sig("MOD", 2, 2, false, "V", "VV"),
	40:  sig("DCOUNT", 3, 3, false, "V", "RRR"),
	41:  sig("DSUM", 3, 3, false, "V", "RRR"),
	42:  sig("DAVERAGE", 3, 3, false, "V", "RRR"),
	43:  sig("DMIN", 3, 3, false, "V", "RRR"),
	44:  sig("DMAX", 3, 3, false, "V", "RRR"),
	45:  sig("DSTDEV", 3, 3, false, "V", "RRR"),
	46:  sig("VAR", 1, 30, false, "V", "R"),
	47:  sig("DVAR", 3, 3, false, "V", "RRR"),
	48:  sig("TEXT", 2, 2, false, "V", "VV"),
	49:  sig("LINEST", 1, 4, false, "A", "RRVV"),
	50:  sig("TREND", 1, 4, false, "A", "RRVV"),
	51:  sig("LOGEST", 1, 4, false, "A", "RRVV"),
	52:  sig("GROWTH", 1, 4, false, "A", "RRVV"),
	57:  sig("TRANSPOSE", 1, 1, false, "A", "A"),
	61:  sig("RAND", 0, 0, true, "V", ""),
	62:  sig("MATCH", 2, 3, false, "V", "VRR"),
	63:  sig("DATE", 3, 3, false, "V", "VVV"),
	64:  sig("TIME", 3, 3, false, "V", "VVV"),
	65:  sig("DAY", 1, 1, false, "V", "V"),
	66:  sig("MONTH", 1, 1, false, "V", "V"),
	67:  sig("YEAR", 1, 1, false, "V", "V"),
	68:  sig("WEEKDAY", 1, 2, false, "V", "VV"),
	69:  sig("HOUR", 1, 1, false, "V", "V"),
	70:  sig("MINUTE", 1, 1, false, "V", "V"),
	71:  sig("SECOND", 1, 1, false, "V", "V"),
	72:  sig("NOW", 0, 0, true, "V", ""),
	73:  sig("AREAS", 1, 1, false, "V", "R"),
	74:  sig("ROWS", 1, 1, false, "V", "R"),
	75:  sig("COLUMNS", 1, 1, false, "V", "R"),
	76:  sig("OFFSET", 3, 5, true, "R", "VRVVV"),
	77:  sig("SEARCH", 2, 3, false, "V", "VVV"),
	79:  sig("TYPE", 1, 1, false, "V", "V"),
	82:  sig("ATAN2", 2, 2, false, "V", "VV"),
	83:  sig("ASIN", 1, 1, false, "V", "V"),
	84:  sig("ACOS", 1, 1, false, "V", "V"),
	85:  sig("CHOOSE", 2, 30, false, "V", "VR"),
	86:  sig("HLOOKUP", 3, 4, false, "V", "VRRV"),
	87:  sig("VLOOKUP", 3, 4, false, "V", "VRRV"),
	88:  sig("ISREF", 1, 1, false, "V", "R"),
	89:  sig("LOG", 1, 2, false, "V", "VV"),
	97:  sig("CHAR", 1, 1, false, "V", "V"),
	98:  sig("LOWER", 1, 1, false, "V", "V"),
	99:  sig("UPPER", 1, 1, false, "V", "V"),
	100: sig("PROPER", 1, 1, false, "V", "V"),
	101: sig("LEFT", 1, 2, false, "V", "VV"),
	102: sig("RIGHT", 1, 2, false, "V", "VV"),
	103: sig("EXACT", 2, 2, false, "V", "VV"),
	104: sig("TRIM", 1, 1, false, "V", "V"),
	105: sig("REPLACE", 4, 4, false, "V", "VVVV"),
	106: sig("SUBSTITUTE", 3, 4, false, "V", "VVVV"),
	107: sig("CODE", 1, 1, false, "V", "V"),
	109: sig("FIND", 2, 3, false, "V", "VVV"),
	111: sig("ISERR", 1, 1, false, "V", "V"),
	112: sig("ISTEXT", 1, 1, false, "V", "V"),
	113: sig("ISNUMBER", 1, 1, false, "V", "V"),
	114: sig("ISBLANK", 1, 1, false, "V", "V"),
	115: sig("T", 1, 1, false, "V", "R"),
	116: sig("N", 1, 1, false, "V", "R"),
	117: sig("DATEVALUE", 1, 1, false, "V", "V"),
	118: sig("TIMEVALUE", 1, 1, false, "V", "V"),
	119: sig("SLN", 3, 3, false, "V", "VVV"),
	120: sig("SYD", 4, 4, false, "V", "VVVV"),
	121: sig("DDB", 4, 5, false, "V", "VVVVV"),
	124: sig("INDIRECT", 1, 2, true, "R", "VV"),
	125: sig("CALLER", 0, 0, true, "R", ""),
	126: sig("CLEAN", 1, 1, false, "V", "V"),
	127: sig("MDETERM", 1, 1, false, "V", "A"),
	128: sig("MINVERSE", 1, 1, false, "A", "A"),
	129: sig("MMULT", 2, 2, false, "A", "AA"),
	130: sig("IPMT", 4, 6, false, "V", "VVVVVV"),
	131: sig("PPMT", 4, 6, false, "V", "VVVVVV"),
	132: sig("COUNTA", 0, 30, false, "V", "R"),
	133: sig("PRODUCT", 0, 30, false, "V", "R"),
	134: sig("FACT", 1, 1, false, "V", "V"),
	135: sig("DPRODUCT", 3, 3, false, "V", "RRR"),
	136: sig("ISNONTEXT", 1, 1, false, "V", "V"),
	137: sig("STDEVP", 1, 30, false, "V", "R"),
	138: sig("VARP", 1, 30, false, "V", "R"),
	139: sig("DSTDEVP", 3, 3, false, "V", "RRR"),
	140: sig("DVARP", 3, 3, false, "V", "RRR"),
	141: sig("TRUNC", 1, 2, false, "V", "VV"),
	142: sig("ISLOGICAL", 1, 1, false, "V", "V"),
	143: sig("DCOUNTA", 3, 3, false, "V", "RRR"),
	144: sig("FINDB", 2, 3, false, "V", "VVV"),
	145: sig("SEARCHB", 2, 3, false, "V", "VVV"),
	146: sig("REPLACEB", 4, 4, false, "V", "VVVV"),
	147: sig("LEFTB", 1, 2, false, "V", "VV"),
	148: sig("RIGHTB", 1, 2, false, "V", "VV"),
	149: sig("MIDB", 3, 3, false, "V", "VVV"),
	150: sig("LENB", 1, 1, false, "V", "V"),
	151: sig("ROUNDUP", 2, 2, false, "V", "VV"),
	152: sig("ROUNDDOWN", 2, 2, false, "V", "VV"),
	153: sig("ASC", 1, 1, false, "V", "V"),
	154: sig("DBCS", 1, 1, false, "V", "V"),
	155: sig("RANK", 2, 3, false, "V", "VRR"),
	156: sig("ADDRESS", 2, 5, false, "V", "VVVVV"),
	157: sig("DAYS360", 2, 2, false, "V", "VV"),
	158: sig("TODAY", 0, 0, true, "V", ""),
	159: sig("VDB", 5, 7, false, "V", "VVVVVVV"),
	160: sig("MEDIAN", 1, 30, false, "V", "R"),
	161: sig("SUMPRODUCT", 1, 30, false, "V", "A"),
	162: sig("SINH", 1, 1, false, "V", "V"),
	163: sig("COSH", 1, 1, false, "V", "V"),
	164: sig("TANH", 1, 1, false, "V", "V"),
	165: sig("ASINH", 1, 1, false, "V", "V"),
	166: sig("ACOSH", 1, 1, false, "V", "V"),
	167: sig("ATANH", 1, 1, false, "V", "V"),
	168: sig("DGET", 3, 3, false, "V", "RRR"),
	169: sig("INFO", 1, 1, false, "V", "V"),
	183: sig("FREQUENCY", 2, 2, false, "A", "RV"),
	184: sig("ERROR.TYPE", 1, 1, false, "V", "V"),
	186: sig("AVEDEV", 1, 30, false, "V", "R"),
	187: sig("BETADIST", 3, 5, false, "V", "VVVVV"),
	188: sig("GAMMALN", 1, 1, false, "V", "V"),
	189: sig("BETAINV", 3, 5, false, "V", "VVVVV"),
	190: sig("BINOMDIST", 4, 4, false, "V", "VVVV"),
	191: sig("CHIDIST", 2, 2, false, "V", "VV"),
	192: sig("CHIINV", 2, 2, false, "V", "VV"),
	193: sig("COMBIN", 2, 2, false, "V", "VV"),
	194: sig("CONFIDENCE", 3, 3, false, "V", "VVV"),
	195: sig("CRITBINOM", 3, 3, false, "V", "VVV"),
	196: sig("EVEN", 1, 1, false, "V", "V"),
	197: sig("EXPONDIST", 3, 3, false, "V", "VVV"),
	198: sig("FDIST", 3, 3, false, "V", "VVV"),
	199: sig("FINV", 3, 3, false, "V", "VVV"),
	200: sig("FISHER", 1, 1, false, "V", "V"),
	201: sig("FISHERINV", 1, 1, false, "V", "V"),
	202: sig("FLOOR", 2, 2, false, "V", "VV"),
	203: sig("GAMMADIST", 4, 4, false, "V", "VVVV"),
	204: sig("GAMMAINV", 3, 3, false, "V", "VVV"),
	205: sig("CEILING", 2, 2, false, "V", "VV"),
	206: sig("HYPGEOMDIST", 4, 4, false, "V", "VVVV"),
	207: sig("LOGNORMDIST", 3, 3, false, "V", "VVV"),
	208: sig("LOGINV", 3, 3, false, "V", "VVV"),
	209: sig("NEGBINOMDIST", 3, 3, false, "V", "VVV"),
	210: sig("NORMDIST", 4, 4, false, "V", "VVVV"),
	211: sig("NORMSDIST", 1, 1, false, "V", "V"),
	212: sig("NORMSINV", 1, 1, false, "V", "V"),
	213: sig("NORMINV", 3, 3, false, "V", "VVV"),
	214: sig("PEARSON", 2, 2, false, "V", "AA"),
	215: sig("POISSON", 3, 3, false, "V", "VVV"),
	216: sig("TDIST", 3, 3, false, "V", "VVV"),
	217: sig("TINV", 2, 2, false, "V", "VV"),
	218: sig("WEIBULL", 4, 4, false, "V", "VVVV"),
	219: sig("SUMXMY2", 2, 2, false, "V", "AA"),
	220: sig("SUMX2MY2", 2, 2, false, "V", "AA"),
	221: sig("SUMX2PY2", 2, 2, false, "V", "AA"),
	222: sig("CHITEST", 2, 2, false, "V", "AA"),
	223: sig("CORREL", 2, 2, false, "V", "AA"),
	224: sig("COVAR", 2, 2, false, "V", "AA"),
	225: sig("FTEST", 2, 2, false, "V", "AA"),
	226: sig("INTERCEPT", 2, 2, false, "V", "AA"),
	228: sig("RSQ", 2, 2, false, "V", "AA"),
	229: sig("STEYX", 2, 2, false, "V", "AA"),
	230: sig("SLOPE", 2, 2, false, "V", "AA"),
	231: sig("TTEST", 4, 4, false, "V", "AAVV"),
	232: sig("PROB", 3, 4, false, "V", "AAVV"),
	233: sig("DEVSQ", 1, 30, false, "V", "R"),
	234: sig("GEOMEAN", 1, 30, false, "V", "R"),
	235: sig("HARMEAN", 1, 30, false, "V", "R"),
	236: sig("SUMSQ", 1, 30, false, "V", "R"),
	237: sig("KURT", 1, 30, false, "V", "R"),
	238: sig("SKEW", 1, 30, false, "V", "R"),
	239: sig("ZTEST", 2, 3, false, "V", "RVV"),
	240: sig("LARGE", 2, 2, false, "V", "RV"),
	241: sig("SMALL", 2, 2, false, "V", "RV"),
	242: sig("QUARTILE", 2, 2, false, "V", "RV"),
	243: sig("PERCENTILE", 2, 2, false, "V", "RV"),
	244: sig("PERCENTRANK", 2, 3, false, "V", "RVV"),
	245: sig("MODE", 1, 30, false, "V", "R"),
	246: sig("TRIMMEAN", 2, 2, false, "V", "RV"),
	252: sig("CONCATENATE", 1, 30, false, "V", "V"),
	253: sig("POWER", 2, 2, false, "V", "VV"),
	254: sig("RADIANS", 1, 1, false, "V", "V"),
	255: sig("DEGREES", 1, 1, false, "V", "V"),
	256: sig("SUBTOTAL", 2, 30, false, "V", "VR"),
	257: sig("SUMIF", 2, 3, false, "V", "RRV"),
	258: sig("COUNTIF", 2, 2, false, "V", "RV"),
	259: sig("COUNTBLANK", 1, 1, false, "V", "R"),
	260: sig("ISPMT", 4, 4, false, "V", "VVVV"),
	261: sig("DATEDIF", 3, 3, false, "V", "VVV"),
	269: sig("SQRTPI", 1, 1, false, "V", "V"),
	285: sig("CALLER.XLM", 0, 0, true, "R", ""),
	288: sig("SERIESSUM", 4, 4, false, "V", "VVVA"),
	289: sig("FACTDOUBLE", 1, 1, false, "V", "V"),
	291: sig("RANDBETWEEN", 2, 2, true, "V", "VV"),
	359: sig("ROMAN", 1, 2, false, "V", "VV"),
	360: sig("GETPIVOTDATA", 2, 30, false, "V", "VR"),
	361: sig("HYPERLINK", 1, 2, false, "V", "VV"),
	362: sig("PHONETIC", 1, 1, false, "V", "R"),
	363: sig("AVERAGEA", 1, 30, false, "V", "R"),
	364: sig("MAXA", 1, 30, false, "V", "R"),
	365: sig("MINA", 1, 30, false, "V", "R"),
	366: sig("STDEVPA", 1, 30, false, "V", "R"),
	367: sig("VARPA", 1, 30, false, "V", "R"),
	368: sig("STDEVA", 1, 30, false, "V", "R"),
	369: sig("VARA", 1, 30, false, "V", "R"),
	370: sig("BAHTTEXT", 1, 1, false, "V", "V"),
	394: sig("RTD", 2, 30, false, "V", "VV"),
}

// Lowest index wins so aliased names resolve the same way every run.
var funcIndexByName = func() map[string]uint16 {
	m := make(map[string]uint16, len(funcDefs))
	for idx, def := range funcDefs {
		if prev, ok := m[def.Name]; ok && prev < idx {
			continue
		}
		m[def.Name] = idx
	}
	return m
}()

// FuncSigByIndex returns the signature of a built-in function by its BIFF
// function index.
func FuncSigByIndex(funcIdx uint16) (FuncSig, error) {
	def, ok := funcDefs[funcIdx]
	if !ok {
		return FuncSig{}, NewXLWTError("unknown function index %d", funcIdx)
	}
	return def, nil
}

// FuncSigByName returns the function index and signature for a function
// name. Lookup is case-insensitive, as formula text is.
func FuncSigByName(name string) (uint16, FuncSig, error) {
	idx, ok := funcIndexByName[strings.ToUpper(name)]
	if !ok {
		return 0, FuncSig{}, NewXLWTError("unknown function name %q", name)
	}
	return idx, funcDefs[idx], nil
}

// FuncNames returns the names of all registered functions, for tooling.
func FuncNames() []string {
	names := make([]string, 0, len(funcIndexByName))
	for name := range funcIndexByName {
		names = append(names, name)
	}
	return names
}
