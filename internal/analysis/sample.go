package analysis

// SampleName labels reports built from SampleCSV.
const SampleName = "sample"

// SampleCSV is a small built-in dataset, handy for trying the tool out.
const SampleCSV = `Name,age,city,salary
A,20,"xx , yy",600
B,30,y,700
`
