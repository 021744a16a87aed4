package pythoncompiled

// builtinsSource describes the builtins module in python. Classes and functions whose
// behavior cannot be written this way are completed natively, see natives.go.
const builtinsSource = `
class object:
    __doc__ = str()
    __module__ = str()

    def __init__(self):
        pass

    def __repr__(self):
        return str()

    def __str__(self):
        return str()

    def __hash__(self):
        return int()

    def __eq__(self, other):
        return bool()

    def __ne__(self, other):
        return bool()


class type(object):
    __name__ = str()
    __qualname__ = str()
    __module__ = str()
    __dict__ = dict()
    __bases__ = tuple()

    def mro(self):
        return [type()]


class NoneType(object):
    pass


class function(object):
    __name__ = str()
    __qualname__ = str()
    __module__ = str()
    __defaults__ = tuple()
    __dict__ = dict()


class method(object):
    __name__ = str()
    __func__ = function()
    __self__ = object()


class module(object):
    __name__ = str()
    __file__ = str()
    __package__ = str()
    __path__ = list()
    __dict__ = dict()


class generator(object):
    def send(self, value):
        pass

    def throw(self, typ, val=None, tb=None):
        pass

    def close(self):
        pass


class staticmethod(object):
    def __init__(self, f):
        self.__func__ = f


class classmethod(object):
    def __init__(self, f):
        self.__func__ = f


class property(object):
    def __init__(self, fget=None, fset=None, fdel=None, doc=None):
        self.fget = fget
        self.fset = fset
        self.fdel = fdel

    def getter(self, fget):
        return property(fget)

    def setter(self, fset):
        return self

    def deleter(self, fdel):
        return self


class int(object):
    def __init__(self, x=0, base=10):
        pass

    def __add__(self, other):
        return int()

    def __sub__(self, other):
        return int()

    def __mul__(self, other):
        return int()

    def __floordiv__(self, other):
        return int()

    def __truediv__(self, other):
        return float()

    def __mod__(self, other):
        return int()

    def __pow__(self, other):
        return int()

    def __neg__(self):
        return int()

    def __pos__(self):
        return int()

    def __invert__(self):
        return int()

    def __and__(self, other):
        return int()

    def __or__(self, other):
        return int()

    def __xor__(self, other):
        return int()

    def __lshift__(self, other):
        return int()

    def __rshift__(self, other):
        return int()

    def bit_length(self):
        return int()

    def to_bytes(self, length, byteorder):
        return bytes()


class bool(int):
    pass


class float(object):
    def __init__(self, x=0.0):
        pass

    def __add__(self, other):
        return float()

    def __radd__(self, other):
        return float()

    def __sub__(self, other):
        return float()

    def __rsub__(self, other):
        return float()

    def __mul__(self, other):
        return float()

    def __rmul__(self, other):
        return float()

    def __truediv__(self, other):
        return float()

    def __rtruediv__(self, other):
        return float()

    def __neg__(self):
        return float()

    def is_integer(self):
        return bool()


class complex(object):
    real = float()
    imag = float()

    def conjugate(self):
        return complex()


class str(object):
    def __init__(self, object=''):
        pass

    def __add__(self, other):
        return str()

    def __mul__(self, n):
        return str()

    def __mod__(self, values):
        return str()

    def __getitem__(self, index):
        return str()

    def __iter__(self):
        yield str()

    def __len__(self):
        return int()

    def __contains__(self, other):
        return bool()

    def upper(self):
        return str()

    def lower(self):
        return str()

    def strip(self, chars=None):
        return str()

    def lstrip(self, chars=None):
        return str()

    def rstrip(self, chars=None):
        return str()

    def split(self, sep=None, maxsplit=-1):
        return [str()]

    def splitlines(self, keepends=False):
        return [str()]

    def join(self, iterable):
        return str()

    def format(self, *args, **kwargs):
        return str()

    def replace(self, old, new, count=-1):
        return str()

    def startswith(self, prefix):
        return bool()

    def endswith(self, suffix):
        return bool()

    def find(self, sub):
        return int()

    def encode(self, encoding='utf-8'):
        return bytes()


class bytes(object):
    def __add__(self, other):
        return bytes()

    def __getitem__(self, index):
        return int()

    def __iter__(self):
        yield int()

    def decode(self, encoding='utf-8'):
        return str()

    def split(self, sep=None):
        return [bytes()]


class list(object):
    def __init__(self, iterable=None):
        pass

    def __add__(self, other):
        return self

    def __len__(self):
        return int()

    def append(self, item):
        return None

    def extend(self, items):
        return None

    def insert(self, index, item):
        return None

    def remove(self, item):
        return None

    def index(self, item):
        return int()

    def count(self, item):
        return int()

    def sort(self, key=None, reverse=False):
        return None

    def reverse(self):
        return None

    def copy(self):
        return self


class tuple(object):
    def __init__(self, iterable=None):
        pass

    def __len__(self):
        return int()

    def index(self, item):
        return int()

    def count(self, item):
        return int()


class set(object):
    def __init__(self, iterable=None):
        pass

    def add(self, item):
        return None

    def discard(self, item):
        return None

    def union(self, *others):
        return self

    def intersection(self, *others):
        return self

    def copy(self):
        return self


class frozenset(object):
    def __init__(self, iterable=None):
        pass

    def union(self, *others):
        return self


class dict(object):
    def __init__(self, *args, **kwargs):
        pass

    def __len__(self):
        return int()

    def keys(self):
        return list()

    def values(self):
        return list()

    def items(self):
        return list()

    def get(self, key, default=None):
        return default

    def setdefault(self, key, default=None):
        return default

    def pop(self, key, default=None):
        return default

    def update(self, *args, **kwargs):
        return None

    def copy(self):
        return self

    def clear(self):
        return None


class range(object):
    def __init__(self, start, stop=None, step=1):
        pass

    def __iter__(self):
        yield int()

    def __len__(self):
        return int()


class enumerate(object):
    def __init__(self, iterable, start=0):
        self.__iterable = iterable

    def __iter__(self):
        for item in self.__iterable:
            yield (int(), item)


class BaseException(object):
    args = tuple()

    def __init__(self, *args):
        pass

    def with_traceback(self, tb):
        return self


class Exception(BaseException):
    pass


class StopIteration(Exception):
    value = None


class ArithmeticError(Exception):
    pass


class ZeroDivisionError(ArithmeticError):
    pass


class AssertionError(Exception):
    pass


class AttributeError(Exception):
    pass


class ImportError(Exception):
    name = str()
    path = str()


class LookupError(Exception):
    pass


class IndexError(LookupError):
    pass


class KeyError(LookupError):
    pass


class NameError(Exception):
    pass


class OSError(Exception):
    errno = int()
    strerror = str()
    filename = str()


IOError = OSError


class RuntimeError(Exception):
    pass


class NotImplementedError(RuntimeError):
    pass


class TypeError(Exception):
    pass


class ValueError(Exception):
    pass


def len(obj):
    return int()


def iter(obj):
    return obj


def next(iterator, default=None):
    return default


def isinstance(obj, classinfo):
    return bool()


def issubclass(cls, classinfo):
    return bool()


def getattr(obj, name, default=None):
    return default


def hasattr(obj, name):
    return bool()


def setattr(obj, name, value):
    return None


def callable(obj):
    return bool()


def repr(obj):
    return str()


def hash(obj):
    return int()


def id(obj):
    return int()


def abs(x):
    return x


def round(number, ndigits=None):
    return int()


def sorted(iterable, key=None, reverse=False):
    return list(iterable)


def reversed(seq):
    return list(seq)


def zip(*iterables):
    return list()


def print(*values, sep=' ', end='\n', file=None, flush=False):
    return None


def input(prompt=''):
    return str()


def open(file, mode='r', buffering=-1, encoding=None):
    return object()
`
