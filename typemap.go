package sqlkit

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlkit/dialect"
)

// typeName maps a column type to its DDL spelling on the writer's
// dialect. Types the dialect cannot express return an
// UnsupportedOperationError.
func typeName(spec *dialectSpec, t *ColumnType) (string, error) {
	if t == nil {
		return "", NewStructuralError("nil column type")
	}
	switch spec.name {
	case dialect.SQLite:
		return sqliteTypeName(t)
	case dialect.MySQL:
		return mysqlTypeName(t)
	default:
		return pgTypeName(t)
	}
}

func withLen(name string, n uint32) string {
	if n > 0 {
		return fmt.Sprintf("%s(%d)", name, n)
	}
	return name
}

func withPrecScale(name string, t *ColumnType) string {
	if t.precision > 0 {
		return fmt.Sprintf("%s(%d, %d)", name, t.precision, t.scale)
	}
	return name
}

func sqliteTypeName(t *ColumnType) (string, error) {
	switch t.kind {
	case typeChar:
		return withLen("char", t.length), nil
	case typeVarchar:
		return withLen("varchar", t.length), nil
	case typeText, typeEnum:
		return "text", nil
	case typeTinyInt:
		return "tinyint", nil
	case typeSmallInt:
		return "smallint", nil
	case typeInt:
		return "integer", nil
	case typeBigInt:
		return "bigint", nil
	case typeTinyUnsigned, typeSmallUnsigned, typeUnsigned, typeBigUnsigned, typeBit, typeVarBit:
		return "integer", nil
	case typeFloat:
		return "float", nil
	case typeDouble:
		return "double", nil
	case typeDecimal:
		return withPrecScale("decimal", t), nil
	case typeMoney:
		return "real", nil
	case typeDateTime:
		return "datetime", nil
	case typeTimestamp:
		return "timestamp", nil
	case typeTimestampTZ:
		return "timestamp with time zone", nil
	case typeTime:
		return "time", nil
	case typeDate:
		return "date", nil
	case typeYear:
		return "integer", nil
	case typeBinary, typeVarBinary, typeBlob:
		return "blob", nil
	case typeBoolean:
		return "boolean", nil
	case typeJSON, typeJSONBinary:
		return "json", nil
	case typeUUID:
		return "uuid", nil
	default:
		return "", NewUnsupportedOperationError("type "+t.String(), dialect.SQLite)
	}
}

func mysqlTypeName(t *ColumnType) (string, error) {
	switch t.kind {
	case typeChar:
		return withLen("char", t.length), nil
	case typeVarchar:
		n := t.length
		if n == 0 {
			n = 255
		}
		return withLen("varchar", n), nil
	case typeText:
		return "text", nil
	case typeTinyInt:
		return "tinyint", nil
	case typeSmallInt:
		return "smallint", nil
	case typeInt:
		return "int", nil
	case typeBigInt:
		return "bigint", nil
	case typeTinyUnsigned:
		return "tinyint unsigned", nil
	case typeSmallUnsigned:
		return "smallint unsigned", nil
	case typeUnsigned:
		return "int unsigned", nil
	case typeBigUnsigned:
		return "bigint unsigned", nil
	case typeFloat:
		return "float", nil
	case typeDouble:
		return "double", nil
	case typeDecimal, typeMoney:
		return withPrecScale("decimal", t), nil
	case typeDateTime:
		return "datetime", nil
	case typeTimestamp, typeTimestampTZ:
		return "timestamp", nil
	case typeTime:
		return "time", nil
	case typeDate:
		return "date", nil
	case typeYear:
		return "year", nil
	case typeBinary:
		return withLen("binary", t.length), nil
	case typeVarBinary:
		n := t.length
		if n == 0 {
			n = 255
		}
		return withLen("varbinary", n), nil
	case typeBit, typeVarBit:
		return withLen("bit", t.length), nil
	case typeBlob:
		return "blob", nil
	case typeBoolean:
		return "bool", nil
	case typeJSON, typeJSONBinary:
		return "json", nil
	case typeUUID:
		return "binary(16)", nil
	case typeEnum:
		var sb strings.Builder
		sb.WriteString("ENUM(")
		for i, v := range t.variants {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('\'')
			sb.WriteString(strings.ReplaceAll(v, "'", "''"))
			sb.WriteByte('\'')
		}
		sb.WriteByte(')')
		return sb.String(), nil
	default:
		return "", NewUnsupportedOperationError("type "+t.String(), dialect.MySQL)
	}
}

func pgTypeName(t *ColumnType) (string, error) {
	switch t.kind {
	case typeChar:
		return withLen("char", t.length), nil
	case typeVarchar:
		return withLen("varchar", t.length), nil
	case typeText:
		return "text", nil
	case typeTinyInt, typeSmallInt:
		return "smallint", nil
	case typeInt:
		return "integer", nil
	case typeBigInt:
		return "bigint", nil
	case typeTinyUnsigned:
		return "smallint", nil
	case typeSmallUnsigned:
		return "integer", nil
	case typeUnsigned, typeBigUnsigned:
		return "bigint", nil
	case typeFloat:
		return "real", nil
	case typeDouble:
		return "double precision", nil
	case typeDecimal:
		return withPrecScale("decimal", t), nil
	case typeMoney:
		return "money", nil
	case typeDateTime:
		return "timestamp without time zone", nil
	case typeTimestamp:
		return "timestamp", nil
	case typeTimestampTZ:
		return "timestamp with time zone", nil
	case typeTime:
		return "time", nil
	case typeDate:
		return "date", nil
	case typeYear:
		return "integer", nil
	case typeInterval:
		name := "interval"
		if t.hasFields {
			name += " " + t.fields.String()
		}
		if t.precision > 0 {
			name += fmt.Sprintf("(%d)", t.precision)
		}
		return name, nil
	case typeBinary, typeVarBinary, typeBlob:
		return "bytea", nil
	case typeBit:
		return withLen("bit", t.length), nil
	case typeVarBit:
		return withLen("varbit", t.length), nil
	case typeBoolean:
		return "boolean", nil
	case typeJSON:
		return "json", nil
	case typeJSONBinary:
		return "jsonb", nil
	case typeUUID:
		return "uuid", nil
	case typeCidr:
		return "cidr", nil
	case typeInet:
		return "inet", nil
	case typeMacAddr:
		return "macaddr", nil
	case typeLTree:
		return "ltree", nil
	case typeEnum:
		return `"` + strings.ReplaceAll(t.enumName, `"`, `""`) + `"`, nil
	case typeArray:
		if t.elem == nil {
			return "", NewStructuralError("array type has no element type")
		}
		elem, err := pgTypeName(t.elem)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	case typeVector:
		return withLen("vector", t.length), nil
	default:
		return "", NewUnsupportedOperationError("type "+t.String(), dialect.Postgres)
	}
}
