// SPDX-License-Identifier: MIT

// Package gfcount counts the words of a pattern language by extracting the
// coefficients of its rational generating function, exactly or through a
// closed form in the index n.
//
// What is in the box?
//
//	• Exact coefficients: formal series inversion over big.Rat (series/).
//	• Root analysis: companion eigenvalues, Newton refinement, recognition of
//	  rational and quadratic-surd roots, multiplicity clustering (roots/).
//	• Closed forms: a multiplicity-aware basis calibrated against the exact
//	  coefficients by a pivoted linear solve (closedform/, matrix/).
//	• Symbolic output: the closed form as an expression with String, LaTeX
//	  and evaluation at any n (symbolic/, identify/).
//
// Turning a pattern into a rational function is not done here. An
// Enumerator is built over a Rationalizer supplied by the caller;
// StaticRationalizer serves a fixed table of functions.
//
// Under the hood:
//
//	poly/          exact sparse polynomials, GCD, square-free decomposition
//	series/        Rational, Overflow, Coefficient, Expansion, Proper, Reduce
//	matrix/        complex dense matrices, LU with partial pivoting, Solve
//	identify/      bounded search for integer, rational and surd constants
//	roots/         FindRoots, Refine, Recognize, Cluster, Collate
//	closedform/    Solver, Fit, InverseSymbolic, AlgebraicForm
//	symbolic/      expression tree and Evaluate
//	config/        YAML configuration and the series catalog
//	cmd/gfcount/   command-line front end
//
// Quick example, the 1-separated strings "(00*1)*":
//
//	rz := gfcount.StaticRationalizer{
//	    "(00*1)*": {Rational: series.NewRational(poly.FromInts(1, -1), poly.FromInts(1, -1, -1))},
//	}
//	e, _ := gfcount.New(rz)
//	c, _ := e.Exact("(00*1)*", 5)        // 3
//	form, _ := e.AlgebraicForm("(00*1)*") // sum over the two golden-ratio roots
package gfcount
