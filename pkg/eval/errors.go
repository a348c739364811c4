package eval

import (
	"fmt"

	"ecsc/pkg/ast"
)

// ErrorCode names a rejection reason the evaluator can return. It is a
// string constant rather than a sentinel error so callers can switch on
// Code without needing errors.Is for every variant.
type ErrorCode string

const (
	ErrInvalidContext                         ErrorCode = "INVALID_CONTEXT"
	ErrUnexpectedStatement                    ErrorCode = "UNEXPECTED_STATEMENT"
	ErrUnknownImport                          ErrorCode = "UNKNOWN_IMPORT"
	ErrDeclarationNameTaken                   ErrorCode = "DECLARATION_NAME_TAKEN"
	ErrFieldNameAlreadyExists                 ErrorCode = "FIELD_NAME_ALREADY_EXISTS"
	ErrUnknownFieldType                       ErrorCode = "UNKNOWN_FIELD_TYPE"
	ErrAmbiguousFieldType                     ErrorCode = "AMBIGUOUS_FIELD_TYPE"
	ErrUnknownFieldName                       ErrorCode = "UNKNOWN_FIELD_NAME"
	ErrInvalidAssocFieldType                  ErrorCode = "INVALID_ASSOC_FIELD_TYPE"
	ErrUnknownComponentType                   ErrorCode = "UNKNOWN_COMPONENT_TYPE"
	ErrUnknownComponentLikeType               ErrorCode = "UNKNOWN_COMPONENT_LIKE_TYPE"
	ErrMultipleCapabilitiesSameComponentLike  ErrorCode = "MULTIPLE_CAPABILITIES_SAME_COMPONENT_LIKE"
	ErrNestedAssoc                            ErrorCode = "NESTED_ASSOC"
	ErrSameFieldsSystemAssociation            ErrorCode = "SAME_FIELDS_SYSTEM_ASSOCIATION"
	ErrNotifyBeforeSystemComponent            ErrorCode = "NOTIFY_BEFORE_SYSTEM_COMPONENT"
	ErrNotifyBlockAndComponents               ErrorCode = "NOTIFY_BLOCK_AND_COMPONENTS"
	ErrMultipleNotifyStatements               ErrorCode = "MULTIPLE_NOTIFY_STATEMENTS"
	ErrDuplicateNotifyComponent               ErrorCode = "DUPLICATE_NOTIFY_COMPONENT"
	ErrInvalidNotifySetting                   ErrorCode = "INVALID_NOTIFY_SETTING"
	ErrOnlyOneGeneratesBlockAllowed           ErrorCode = "ONLY_ONE_GENERATES_BLOCK_ALLOWED"
	ErrGeneratesDuplicateComponentConstraints ErrorCode = "GENERATES_DUPLICATE_COMPONENT_CONSTRAINTS"
	ErrNoCapabilities                         ErrorCode = "NO_CAPABILITIES"
	ErrParametersNotAllowed                   ErrorCode = "PARAMETERS_NOT_ALLOWED"
	ErrUnknownParameterName                   ErrorCode = "UNKNOWN_PARAMETER_NAME"
	ErrInvalidParameterValue                  ErrorCode = "INVALID_PARAMETER_VALUE"
	ErrInternal                               ErrorCode = "INTERNAL"
)

// Error is the value result every evaluator entry point returns on
// rejection. It is never a panic: user-supplied statement streams can
// always be rejected cleanly, per spec.md §7.
type Error struct {
	Code        ErrorCode
	Relevant    string
	ContextKind ast.Kind
}

func (e *Error) Error() string {
	if e.Relevant == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Relevant)
}

func newErr(code ErrorCode, relevant string, ctx ast.Kind) *Error {
	return &Error{Code: code, Relevant: relevant, ContextKind: ctx}
}

func newInvalidContext(ctx ast.Kind) *Error      { return newErr(ErrInvalidContext, "", ctx) }
func newUnexpectedStatement(ctx ast.Kind) *Error { return newErr(ErrUnexpectedStatement, "", ctx) }
func newUnknownImport(name string) *Error        { return newErr(ErrUnknownImport, name, ast.IMPORT) }
func newDeclarationNameTaken(name string) *Error {
	return newErr(ErrDeclarationNameTaken, name, ast.NONE)
}
func newFieldNameAlreadyExists(name string) *Error {
	return newErr(ErrFieldNameAlreadyExists, name, ast.NONE)
}
func newUnknownFieldType(name string) *Error {
	return newErr(ErrUnknownFieldType, name, ast.USER_TYPE_FIELD)
}
func newAmbiguousFieldType(name string) *Error {
	return newErr(ErrAmbiguousFieldType, name, ast.USER_TYPE_FIELD)
}
func newUnknownFieldName(name string) *Error { return newErr(ErrUnknownFieldName, name, ast.NONE) }
func newInvalidAssocFieldType(name string) *Error {
	return newErr(ErrInvalidAssocFieldType, name, ast.SYSTEM_WITH)
}
func newUnknownComponentType(name string) *Error {
	return newErr(ErrUnknownComponentType, name, ast.ENTITY_CONSTRAINT)
}
func newUnknownComponentLikeType(name string) *Error {
	return newErr(ErrUnknownComponentLikeType, name, ast.SYSTEM_COMPONENT)
}
func newMultipleCapabilitiesSameComponentLike(name string) *Error {
	return newErr(ErrMultipleCapabilitiesSameComponentLike, name, ast.SYSTEM_COMPONENT)
}
func newNestedAssoc() *Error { return newErr(ErrNestedAssoc, "", ast.SYSTEM_COMPONENT) }
func newSameFieldsSystemAssociation() *Error {
	return newErr(ErrSameFieldsSystemAssociation, "", ast.SYSTEM_COMPONENT)
}
func newNotifyBeforeSystemComponent() *Error {
	return newErr(ErrNotifyBeforeSystemComponent, "", ast.SYSTEM_COMPONENT)
}
func newNotifyBlockAndComponents() *Error {
	return newErr(ErrNotifyBlockAndComponents, "", ast.SYSTEM_NOTIFY_COMPONENT)
}
func newMultipleNotifyStatements() *Error {
	return newErr(ErrMultipleNotifyStatements, "", ast.SYSTEM_NOTIFY)
}
func newDuplicateNotifyComponent(name string) *Error {
	return newErr(ErrDuplicateNotifyComponent, name, ast.SYSTEM_NOTIFY_COMPONENT)
}
func newInvalidNotifySetting(setting string) *Error {
	return newErr(ErrInvalidNotifySetting, setting, ast.SYSTEM_NOTIFY)
}
func newOnlyOneGeneratesBlockAllowed() *Error {
	return newErr(ErrOnlyOneGeneratesBlockAllowed, "", ast.SYSTEM_GENERATES)
}
func newGeneratesDuplicateComponentConstraints(name string) *Error {
	return newErr(ErrGeneratesDuplicateComponentConstraints, name, ast.ENTITY_CONSTRAINT)
}
func newNoCapabilities() *Error       { return newErr(ErrNoCapabilities, "", ast.ACTION) }
func newParametersNotAllowed() *Error { return newErr(ErrParametersNotAllowed, "", ast.NONE) }
func newUnknownParameterName(name string) *Error {
	return newErr(ErrUnknownParameterName, name, ast.NONE)
}
func newInvalidParameterValue(name string) *Error {
	return newErr(ErrInvalidParameterValue, name, ast.NONE)
}
func newInternal(kind ast.Kind) *Error { return newErr(ErrInternal, kind.String(), kind) }
