package main

// intrinsics maps every built-in callable to its arity. The built-ins are
// implemented by the C prolog, so a call to one translates to an ordinary
// C function call.
var intrinsics = map[string]int{
	"display": 1,
	"read":    0,
}

const prolog = `/* Haumea prolog */
#include <stdio.h>

long display(long n) {
    printf("%ld\n", n);
    return 0;
}

long read() {
    printf("Enter an integer: ");
    long n;
    scanf("%ld", &n);
    return n;
}

/* End prolog */

/* Start compiled program */

`

const epilog = `
/* End compiled program */
`
