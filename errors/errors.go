package errors

import (
	"fmt"

	"github.com/pontaoski/haumeago/types"
)

type UnexpectedCharacter struct {
	Character rune
	Location  types.Span
}

func (e UnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character %q. %s", e.Character, e.Location)
}

type UnterminatedComment struct {
	Location types.Span
}

func (e UnterminatedComment) Error() string {
	return fmt.Sprintf("comment opened but never closed. %s", e.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s. %s", e.Got, e.Expected, e.Location)
}

type DuplicateParameter struct {
	Name     string
	Location types.Span
}

func (e DuplicateParameter) Error() string {
	return fmt.Sprintf("parameter %s specified more than once. %s", e.Name, e.Location)
}

type NoMainFunction struct {
}

func (e NoMainFunction) Error() string {
	return "no main function declared"
}

type MainHasParameters struct {
	Location types.Span
}

func (e MainHasParameters) Error() string {
	return fmt.Sprintf("main may not take parameters. %s", e.Location)
}

type DuplicateFunction struct {
	Name     string
	Location types.Span
}

func (e DuplicateFunction) Error() string {
	return fmt.Sprintf("function %s declared more than once. %s", e.Name, e.Location)
}

type RedefinedIntrinsic struct {
	Name     string
	Location types.Span
}

func (e RedefinedIntrinsic) Error() string {
	return fmt.Sprintf("function %s would shadow a built-in. %s", e.Name, e.Location)
}

type UndefinedFunction struct {
	Name     string
	Location types.Span
}

func (e UndefinedFunction) Error() string {
	return fmt.Sprintf("call to undefined function %s. %s", e.Name, e.Location)
}

type WrongArgumentCount struct {
	Name     string
	Expected int
	Got      int
	Location types.Span
}

func (e WrongArgumentCount) Error() string {
	return fmt.Sprintf("%s takes %d arguments, got %d. %s", e.Name, e.Expected, e.Got, e.Location)
}

type UndefinedVariable struct {
	Name     string
	Location types.Span
}

func (e UndefinedVariable) Error() string {
	return fmt.Sprintf("variable %s has not been declared. %s", e.Name, e.Location)
}

type RedeclaredVariable struct {
	Name     string
	Location types.Span
}

func (e RedeclaredVariable) Error() string {
	return fmt.Sprintf("variable %s declared more than once in this block. %s", e.Name, e.Location)
}
