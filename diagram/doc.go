// Package diagram reconstructs process diagrams from unconnected
// vector-shape records.
//
// Office documents frequently draw flows as loose collections of
// rectangles and arrows with no grouping information. Reconstruction runs
// in stages:
//
//  1. Shapes anchored in the same paragraph merge when they share a
//     table-cell context signature or sit within a tight offset delta
//     (the strong rule).
//  2. Shape groups split across adjacent paragraphs stitch together when
//     their centroids are close and their bounding boxes have sane aspect
//     ratios (the weak rule).
//  3. Within each cluster, arrow-like presets become connectors and the
//     remaining shapes become steps.
//  4. Step order comes from leading markers (①, "2.", "iv)"); clusters
//     with no markers at all fall back to top-left-first reading order.
//  5. Each connector resolves to the two nearest step centers; with fewer
//     than two steps it is retained with unresolved endpoints.
//
// The clustering thresholds live in [Config] and are expressed in the
// EMU-like relative units of the drawing records. A structural failure
// inside one cluster skips that cluster with a logged diagnostic;
// extraction of the remaining clusters always continues.
package diagram
